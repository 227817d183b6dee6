package orchestrator

import (
	"github.com/johnzilla/cclink/internal/clipboard"
	"github.com/johnzilla/cclink/internal/cryptocore"
	"github.com/johnzilla/cclink/internal/keystore"
)

// WhoAmIResult is the identity summary whoami prints.
type WhoAmIResult struct {
	PublicKeyZ32    string
	Fingerprint     string
	KeyPath         string
	ClipboardCopied bool
}

// WhoAmI loads the identity and reports its z32 public key, short
// fingerprint, and key path, best-effort copying the z32 key to the
// clipboard.
func (o *Orchestrator) WhoAmI() (WhoAmIResult, error) {
	pub, _, err := o.loadIdentity()
	if err != nil {
		return WhoAmIResult{}, err
	}

	z32 := cryptocore.EncodeZ32(pub)
	return WhoAmIResult{
		PublicKeyZ32:    z32,
		Fingerprint:     keystore.Fingerprint(pub),
		KeyPath:         o.Keys.KeyPath(),
		ClipboardCopied: clipboard.CopyBestEffort(z32),
	}, nil
}

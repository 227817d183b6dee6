package orchestrator

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/johnzilla/cclink/internal/cryptocore"
	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
	"github.com/johnzilla/cclink/internal/keystore"
)

// InitOptions configures Init.
type InitOptions struct {
	// ImportHex, if non-empty, is a 64-character hex seed to import
	// instead of generating a fresh keypair.
	ImportHex string
	// Yes skips the overwrite confirmation when a key already exists.
	Yes bool
}

// InitResult describes the identity Init created or imported.
type InitResult struct {
	PublicKeyZ32   string
	Fingerprint    string
	KeyPath        string
	UsedPassphrase bool
}

// Init ensures the key directory exists, generates or imports an
// identity, and writes it to disk either as a passphrase-protected
// envelope or plaintext hex. It never writes a key file without mode
// 0600 (WriteAtomic enforces this).
func (o *Orchestrator) Init(opts InitOptions) (InitResult, error) {
	if err := o.Keys.EnsureDir(); err != nil {
		return InitResult{}, err
	}

	if o.Keys.Exists() {
		if !opts.Yes {
			if !o.Prompt.IsTerminal() {
				return InitResult{}, cclinkerrors.ErrKeyAlreadyExists
			}
			overwrite, err := o.Prompt.Confirm("A keypair already exists. Overwrite it? [y/N] ")
			if err != nil {
				return InitResult{}, err
			}
			if !overwrite {
				return InitResult{}, cclinkerrors.ErrCancelled
			}
		}
	}

	var seed []byte
	var pub ed25519.PublicKey
	if opts.ImportHex != "" {
		s, err := keystore.Import(opts.ImportHex)
		if err != nil {
			return InitResult{}, err
		}
		seed = s
		pub = ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	} else {
		p, priv, err := keystore.Generate()
		if err != nil {
			return InitResult{}, err
		}
		pub = p
		seed = priv.Seed()
	}
	defer cryptocore.SecureZero(seed)

	usePassphrase := false
	if o.Prompt.IsTerminal() {
		yes, err := o.Prompt.Confirm("Protect the key with a passphrase? [Y/n] ")
		if err != nil {
			return InitResult{}, err
		}
		usePassphrase = yes
	}

	var data []byte
	if usePassphrase {
		passphrase, err := o.Prompt.ReadSecretConfirm("Passphrase: ")
		if err != nil {
			return InitResult{}, err
		}
		passphraseBytes := []byte(passphrase)
		defer cryptocore.SecureZero(passphraseBytes)

		if len(passphraseBytes) < 8 {
			return InitResult{}, fmt.Errorf("%w: must be at least 8 characters", cclinkerrors.ErrWeakPassphrase)
		}
		envelope, err := cryptocore.EncryptEnvelope(seed, passphraseBytes)
		if err != nil {
			return InitResult{}, err
		}
		data = envelope
	} else {
		data = []byte(hex.EncodeToString(seed))
	}

	if err := o.Keys.WriteAtomic(data); err != nil {
		return InitResult{}, err
	}

	return InitResult{
		PublicKeyZ32:   cryptocore.EncodeZ32(pub),
		Fingerprint:    keystore.Fingerprint(pub),
		KeyPath:        o.Keys.KeyPath(),
		UsedPassphrase: usePassphrase,
	}, nil
}

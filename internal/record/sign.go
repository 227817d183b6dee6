package record

import (
	"crypto/ed25519"
	"encoding/base64"

	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
)

// Sign computes the Ed25519 signature over the canonical JSON of signable
// and returns it base64-encoded, ready to store in HandoffRecord.Signature.
func Sign(signable Signable, priv ed25519.PrivateKey) (string, error) {
	canonical, err := CanonicalJSON(signable)
	if err != nil {
		return "", cclinkerrors.NewCryptoError("sign", err)
	}
	sig := ed25519.Sign(priv, canonical)
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify rebuilds the signable view of record, recomputes canonical JSON,
// and checks the signature against pub (a z32-decoded Ed25519 public key).
// Any defect - malformed base64, wrong signature length, or cryptographic
// mismatch - collapses to a single ErrSignatureVerificationFailed; callers
// never see which specific thing was wrong.
func Verify(r *HandoffRecord, pub ed25519.PublicKey) error {
	canonical, err := CanonicalJSON(r.ToSignable())
	if err != nil {
		return cclinkerrors.NewCryptoError("canonical-json", err)
	}

	sig, err := base64.StdEncoding.DecodeString(r.Signature)
	if err != nil {
		return cclinkerrors.ErrSignatureVerificationFailed
	}
	if len(sig) != ed25519.SignatureSize {
		return cclinkerrors.ErrSignatureVerificationFailed
	}

	if !ed25519.Verify(pub, canonical, sig) {
		return cclinkerrors.ErrSignatureVerificationFailed
	}
	return nil
}

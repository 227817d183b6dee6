package cryptocore

import (
	"bytes"
	"fmt"
	"io"

	"filippo.io/age"
)

// AgeIdentity builds an age X25519 identity from a raw X25519 secret scalar
// derived via ScalarFromSeed.
func AgeIdentity(x25519Scalar []byte) (*age.X25519Identity, error) {
	if len(x25519Scalar) != 32 {
		return nil, fmt.Errorf("x25519 scalar must be 32 bytes, got %d", len(x25519Scalar))
	}
	id, err := age.NewX25519Identity(x25519Scalar)
	if err != nil {
		return nil, fmt.Errorf("age identity: %w", err)
	}
	return id, nil
}

// AgeRecipient builds an age X25519 recipient from a raw X25519 Montgomery
// public point (either MontgomeryFromEdPublic or MontgomeryFromScalar).
func AgeRecipient(x25519Pubkey []byte) (*age.X25519Recipient, error) {
	if len(x25519Pubkey) != 32 {
		return nil, fmt.Errorf("x25519 public key must be 32 bytes, got %d", len(x25519Pubkey))
	}
	r, err := age.NewX25519Recipient(x25519Pubkey)
	if err != nil {
		return nil, fmt.Errorf("age recipient: %w", err)
	}
	return r, nil
}

// RecipientFromPubkey is a convenience wrapper combining
// MontgomeryFromEdPublic and AgeRecipient, mirroring
// recipient_from_z32 in the reference implementation: given the Ed25519
// public key of a handoff partner, build the age recipient to encrypt for.
func RecipientFromPubkey(edPub []byte) (*age.X25519Recipient, error) {
	montgomery, err := MontgomeryFromEdPublic(edPub)
	if err != nil {
		return nil, err
	}
	return AgeRecipient(montgomery)
}

// Encrypt produces an age ciphertext blob for plaintext addressed to
// recipient. The full blob (including the age header, which carries the
// ephemeral public key) must be stored and passed unmodified to Decrypt.
func Encrypt(plaintext []byte, recipient age.Recipient) ([]byte, error) {
	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("age encrypt setup: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("age encrypt write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("age encrypt close: %w", err)
	}
	return buf.Bytes(), nil
}

// Decrypt reverses Encrypt given the matching identity.
func Decrypt(ciphertext []byte, identity age.Identity) ([]byte, error) {
	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, fmt.Errorf("age decrypt: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("age decrypt read: %w", err)
	}
	return out, nil
}

package orchestrator

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"

	"github.com/johnzilla/cclink/internal/cryptocore"
)

// decryptEnvelopeSeed is a thin adapter so orchestrator.go doesn't import
// cryptocore directly in more than this one spot.
func decryptEnvelopeSeed(envelope, passphrase []byte) ([]byte, error) {
	return cryptocore.DecryptEnvelope(envelope, passphrase)
}

// encryptForSelf encrypts payload to ownPub, the default publish mode.
func encryptForSelf(payload []byte, ownPub ed25519.PublicKey) (blob string, err error) {
	recipient, err := cryptocore.RecipientFromPubkey(ownPub)
	if err != nil {
		return "", err
	}
	ciphertext, err := cryptocore.Encrypt(payload, recipient)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// encryptForRecipient encrypts payload to the z32-encoded Ed25519 public
// key recipientZ32, the --share publish mode.
func encryptForRecipient(payload []byte, recipientZ32 string) (blob string, err error) {
	recipientPub, err := cryptocore.DecodeZ32(recipientZ32)
	if err != nil {
		return "", fmt.Errorf("invalid recipient public key: %w", err)
	}
	recipient, err := cryptocore.RecipientFromPubkey(recipientPub)
	if err != nil {
		return "", err
	}
	ciphertext, err := cryptocore.Encrypt(payload, recipient)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// encryptForPIN derives a key from pin and a fresh salt, encrypts payload
// to the derived X25519 key, and returns the blob alongside the
// base64-encoded salt for record.Signable.PinSalt.
func encryptForPIN(payload []byte, pin string) (blob, saltB64 string, err error) {
	salt, err := cryptocore.RandomBytes(32)
	if err != nil {
		return "", "", err
	}
	key, err := cryptocore.DeriveFromPIN([]byte(pin), salt)
	if err != nil {
		return "", "", err
	}
	defer cryptocore.SecureZero(key)

	pubPoint, err := cryptocore.MontgomeryFromScalar(key)
	if err != nil {
		return "", "", err
	}
	recipient, err := cryptocore.AgeRecipient(pubPoint)
	if err != nil {
		return "", "", err
	}
	ciphertext, err := cryptocore.Encrypt(payload, recipient)
	if err != nil {
		return "", "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), base64.StdEncoding.EncodeToString(salt), nil
}

// decryptWithPIN reverses encryptForPIN given the blob, the stored salt,
// and the user-supplied PIN.
func decryptWithPIN(blobB64, saltB64, pin string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(blobB64)
	if err != nil {
		return nil, fmt.Errorf("malformed blob: %w", err)
	}
	salt, err := base64.StdEncoding.DecodeString(saltB64)
	if err != nil {
		return nil, fmt.Errorf("malformed pin_salt: %w", err)
	}
	key, err := cryptocore.DeriveFromPIN([]byte(pin), salt)
	if err != nil {
		return nil, err
	}
	defer cryptocore.SecureZero(key)

	identity, err := cryptocore.AgeIdentity(key)
	if err != nil {
		return nil, err
	}
	return cryptocore.Decrypt(ciphertext, identity)
}

// decryptWithIdentity decrypts blob using the caller's own Ed25519 seed.
func decryptWithIdentity(blobB64 string, seed []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(blobB64)
	if err != nil {
		return nil, fmt.Errorf("malformed blob: %w", err)
	}
	scalar, err := cryptocore.ScalarFromSeed(seed)
	if err != nil {
		return nil, err
	}
	defer cryptocore.SecureZero(scalar)

	identity, err := cryptocore.AgeIdentity(scalar)
	if err != nil {
		return nil, err
	}
	return cryptocore.Decrypt(ciphertext, identity)
}

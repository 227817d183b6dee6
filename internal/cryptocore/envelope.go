package cryptocore

import (
	"encoding/binary"
	"errors"
	"fmt"

	"filippo.io/age"
)

// KeyEnvelope is the on-disk encrypted container for a passphrase-protected
// Ed25519 seed, identified by the 8-byte magic "CCLINKEK". Layout:
//
//	offset  len  field
//	0       8    magic "CCLINKEK"
//	8       1    version
//	9       4    Argon2 memory cost (KiB, big-endian u32)
//	13      4    Argon2 time cost
//	17      4    Argon2 parallelism
//	21      32   salt
//	53      ...  age ciphertext of the 32-byte seed
//
// Argon2 parameters travel in the header rather than hardcoded constants so
// an envelope written under older parameters stays decryptable after a
// future parameter upgrade.
const (
	envelopeMagic        = "CCLINKEK"
	envelopeMagicSize    = 8
	envelopeVersion byte = 1
	envelopeVersionSize  = 1
	envelopeParamSize    = 4 // one u32 field
	envelopeSaltSize     = 32
	envelopeHeaderSize   = envelopeMagicSize + envelopeVersionSize + 3*envelopeParamSize + envelopeSaltSize // 53
)

var (
	// ErrInvalidEnvelope covers any structural problem with a key envelope:
	// short input, bad magic, unsupported version. It is also returned (not
	// a more specific error) for a wrong-passphrase decrypt failure, so the
	// caller never leaks internal age/Argon2 error text.
	ErrInvalidEnvelope = errors.New("invalid key envelope")
)

// EncryptEnvelope wraps a 32-byte Ed25519 seed in a CCLINKEK envelope under
// the given passphrase. A fresh random salt is generated for every call.
func EncryptEnvelope(seed, passphrase []byte) ([]byte, error) {
	if len(seed) != 32 {
		return nil, fmt.Errorf("seed must be 32 bytes, got %d", len(seed))
	}

	salt, err := RandomBytes(envelopeSaltSize)
	if err != nil {
		return nil, fmt.Errorf("envelope salt: %w", err)
	}

	key, err := DeriveFromPassphrase(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("envelope key derivation: %w", err)
	}
	defer SecureZero(key)

	recipient, err := age.NewX25519Recipient(deriveEnvelopeMontgomery(key))
	if err != nil {
		return nil, fmt.Errorf("envelope recipient: %w", err)
	}

	ciphertext, err := Encrypt(seed, recipient)
	if err != nil {
		return nil, fmt.Errorf("envelope encrypt: %w", err)
	}

	header := make([]byte, envelopeHeaderSize)
	copy(header[0:envelopeMagicSize], envelopeMagic)
	header[envelopeMagicSize] = envelopeVersion
	binary.BigEndian.PutUint32(header[9:13], Argon2Memory)
	binary.BigEndian.PutUint32(header[13:17], Argon2Time)
	binary.BigEndian.PutUint32(header[17:21], Argon2Threads)
	copy(header[21:53], salt)

	return append(header, ciphertext...), nil
}

// DecryptEnvelope reverses EncryptEnvelope, returning the original 32-byte
// seed. A wrong passphrase or any corruption of the envelope returns
// ErrInvalidEnvelope without further detail.
func DecryptEnvelope(envelope, passphrase []byte) ([]byte, error) {
	if len(envelope) < envelopeHeaderSize {
		return nil, ErrInvalidEnvelope
	}
	if string(envelope[0:envelopeMagicSize]) != envelopeMagic {
		return nil, ErrInvalidEnvelope
	}
	if envelope[envelopeMagicSize] != envelopeVersion {
		return nil, ErrInvalidEnvelope
	}

	memory := binary.BigEndian.Uint32(envelope[9:13])
	timeCost := binary.BigEndian.Uint32(envelope[13:17])
	threads := binary.BigEndian.Uint32(envelope[17:21])
	salt := envelope[21:53]
	ciphertext := envelope[53:]

	key, err := deriveEnvelopeKey(passphrase, salt, memory, timeCost, threads)
	if err != nil {
		return nil, ErrInvalidEnvelope
	}
	defer SecureZero(key)

	identity, err := age.NewX25519Identity(deriveEnvelopeMontgomery(key))
	if err != nil {
		return nil, ErrInvalidEnvelope
	}

	seed, err := Decrypt(ciphertext, identity)
	if err != nil {
		return nil, ErrInvalidEnvelope
	}
	if len(seed) != 32 {
		SecureZero(seed)
		return nil, ErrInvalidEnvelope
	}

	return seed, nil
}

// deriveEnvelopeKey re-runs the passphrase KDF using parameters read back
// from the envelope header, rather than the package's compiled-in
// Argon2Memory/Argon2Time/Argon2Threads constants, so an envelope written
// under different parameters remains decryptable.
func deriveEnvelopeKey(passphrase, salt []byte, memory, timeCost, threads uint32) ([]byte, error) {
	return deriveTwoStageWithParams(passphrase, salt, passphraseInfo, timeCost, memory, uint8(threads))
}

// deriveEnvelopeMontgomery treats the 32-byte KDF output directly as an
// X25519 scalar: the envelope's "key" is never an Ed25519 seed, so no
// SHA-512/clamping step applies here, only the scalar-to-point age
// constructors used for regular X25519 keys.
func deriveEnvelopeMontgomery(key []byte) []byte {
	return key
}

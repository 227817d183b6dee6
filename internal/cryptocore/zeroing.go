// Package cryptocore provides the cclink identity/record cryptography:
// Ed25519<->X25519 derivation, age envelope encryption, and PIN/passphrase
// key derivation. This is AUDIT-CRITICAL code - changes here directly
// affect decryptability of existing records and key envelopes.
package cryptocore

import (
	"crypto/subtle"
)

// SecureZero overwrites a byte slice with zeros to prevent sensitive data
// from persisting in memory. This helps mitigate memory dump attacks and
// reduces the window during which keys are recoverable from RAM.
//
// Due to Go's garbage collector and potential compiler optimizations, this
// function cannot guarantee complete erasure. The function uses
// subtle.ConstantTimeCopy to prevent the compiler from optimizing away the
// zeroing operation.
func SecureZero(b []byte) {
	if len(b) == 0 {
		return
	}
	zeros := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zeros)
}

// SecureZeroMultiple zeros multiple byte slices in a single call.
func SecureZeroMultiple(slices ...[]byte) {
	for _, s := range slices {
		SecureZero(s)
	}
}

// KeyMaterial wraps sensitive key data with automatic zeroing on Close().
//
// Example:
//
//	km := NewKeyMaterial(derivedKey)
//	defer km.Close()
//	// ... use km.Bytes() ...
type KeyMaterial struct {
	data   []byte
	closed bool
}

// NewKeyMaterial creates a new KeyMaterial wrapper.
// The data is copied to prevent modification of the original slice.
func NewKeyMaterial(data []byte) *KeyMaterial {
	if data == nil {
		return &KeyMaterial{}
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return &KeyMaterial{data: copied}
}

// Bytes returns the underlying key data, or nil if closed.
func (km *KeyMaterial) Bytes() []byte {
	if km.closed {
		return nil
	}
	return km.data
}

// Len returns the length of the key data.
func (km *KeyMaterial) Len() int {
	if km.closed || km.data == nil {
		return 0
	}
	return len(km.data)
}

// Close securely zeros the key data and marks it as closed.
// This method is idempotent.
func (km *KeyMaterial) Close() {
	if km.closed || km.data == nil {
		return
	}
	SecureZero(km.data)
	km.data = nil
	km.closed = true
}

// IsClosed returns whether the KeyMaterial has been closed.
func (km *KeyMaterial) IsClosed() bool {
	return km.closed
}

// SecretContext holds every sensitive byte buffer touched by a single
// cryptographic operation: the Ed25519 seed, its derived X25519 scalar, a
// PIN or passphrase, and the Argon2id/HKDF outputs derived from it. Each
// buffer is owned by exactly one call frame (spec §5) and zeroed together
// on Close(), which must run via defer immediately after construction.
type SecretContext struct {
	Seed           []byte
	X25519Scalar   []byte
	Passphrase     []byte
	PIN            []byte
	Argon2Output   []byte
	HKDFOutput     []byte
	closed         bool
}

// Close securely zeros every buffer in the context. Idempotent.
func (sc *SecretContext) Close() {
	if sc.closed {
		return
	}
	SecureZeroMultiple(
		sc.Seed,
		sc.X25519Scalar,
		sc.Passphrase,
		sc.PIN,
		sc.Argon2Output,
		sc.HKDFOutput,
	)
	sc.Seed = nil
	sc.X25519Scalar = nil
	sc.Passphrase = nil
	sc.PIN = nil
	sc.Argon2Output = nil
	sc.HKDFOutput = nil
	sc.closed = true
}

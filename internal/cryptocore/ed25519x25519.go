package cryptocore

import (
	"crypto/ed25519"
	"crypto/sha512"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/curve25519"
)

// ScalarFromSeed derives the X25519 secret scalar from a raw 32-byte Ed25519
// seed: SHA-512(seed)[0:32], clamped per RFC 7748. This is the same
// computation ed25519.SigningKey.to_scalar_bytes() performs, so a given
// identity always maps to the same X25519 key regardless of which Ed25519
// library produced it.
//
// The result is a bare 32-byte scalar. Never mix it with any curve-library's
// native point/scalar types beyond this package's boundary - hand raw bytes
// across, nothing else.
func ScalarFromSeed(seed []byte) ([]byte, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}

	h := sha512.Sum512(seed)
	scalar, err := new(edwards25519.Scalar).SetBytesWithClamping(h[:32])
	if err != nil {
		return nil, fmt.Errorf("scalar clamping failed: %w", err)
	}
	SecureZero(h[:])

	return scalar.Bytes(), nil
}

// MontgomeryFromEdPublic converts an Ed25519 public key (Edwards point) to
// its X25519 Montgomery u-coordinate, used to build an age recipient for a
// handoff partner identified only by their published Ed25519 key.
func MontgomeryFromEdPublic(pub ed25519.PublicKey) ([]byte, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}

	point, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return nil, fmt.Errorf("invalid ed25519 point: %w", err)
	}

	u := point.BytesMontgomery()
	if len(u) != 32 {
		return nil, errors.New("unexpected montgomery coordinate length")
	}
	return u, nil
}

// MontgomeryFromScalar derives the X25519 public Montgomery point belonging
// to a secret scalar previously produced by ScalarFromSeed, for local
// whoami display rather than re-deriving it from the Ed25519 public key.
func MontgomeryFromScalar(scalar []byte) ([]byte, error) {
	if len(scalar) != 32 {
		return nil, errors.New("x25519 scalar must be 32 bytes")
	}
	pub, err := curve25519.X25519(scalar, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("invalid x25519 scalar: %w", err)
	}
	return pub, nil
}

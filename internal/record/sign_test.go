package record

import (
	"crypto/ed25519"
	"testing"

	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
)

func fixedKeypair(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = 42
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return priv.Public().(ed25519.PublicKey), priv
}

func buildRecord(signable Signable, sig string) *HandoffRecord {
	return &HandoffRecord{
		Blob:      signable.Blob,
		Burn:      signable.Burn,
		CreatedAt: signable.CreatedAt,
		Hostname:  signable.Hostname,
		PinSalt:   signable.PinSalt,
		Project:   signable.Project,
		Pubkey:    signable.Pubkey,
		Recipient: signable.Recipient,
		Signature: sig,
		TTL:       signable.TTL,
	}
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	pub, priv := fixedKeypair(t)
	signable := sampleSignable()

	sig, err := Sign(signable, priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	r := buildRecord(signable, sig)
	if err := Verify(r, pub); err != nil {
		t.Errorf("Verify failed: %v", err)
	}
}

func TestVerifyFailsWrongPubkey(t *testing.T) {
	_, priv := fixedKeypair(t)
	otherSeed := make([]byte, ed25519.SeedSize)
	for i := range otherSeed {
		otherSeed[i] = 99
	}
	otherPub := ed25519.NewKeyFromSeed(otherSeed).Public().(ed25519.PublicKey)

	signable := sampleSignable()
	sig, err := Sign(signable, priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	r := buildRecord(signable, sig)
	if err := Verify(r, otherPub); err != cclinkerrors.ErrSignatureVerificationFailed {
		t.Errorf("expected ErrSignatureVerificationFailed, got %v", err)
	}
}

func TestVerifyFailsTamperedField(t *testing.T) {
	pub, priv := fixedKeypair(t)
	signable := sampleSignable()
	sig, err := Sign(signable, priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	r := buildRecord(signable, sig)
	r.TTL = signable.TTL + 9999

	if err := Verify(r, pub); err != cclinkerrors.ErrSignatureVerificationFailed {
		t.Errorf("expected ErrSignatureVerificationFailed for tampered ttl, got %v", err)
	}
}

func TestVerifyFailsTamperedBurn(t *testing.T) {
	pub, priv := fixedKeypair(t)
	signable := sampleSignable()
	signable.Burn = false
	sig, err := Sign(signable, priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	r := buildRecord(signable, sig)
	r.Burn = true // tampered after signing

	if err := Verify(r, pub); err != cclinkerrors.ErrSignatureVerificationFailed {
		t.Errorf("expected ErrSignatureVerificationFailed for tampered burn, got %v", err)
	}
}

func TestVerifyFailsTamperedRecipient(t *testing.T) {
	pub, priv := fixedKeypair(t)
	signable := sampleSignable()
	sig, err := Sign(signable, priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	r := buildRecord(signable, sig)
	tampered := "attacker-controlled-pubkey"
	r.Recipient = &tampered

	if err := Verify(r, pub); err != cclinkerrors.ErrSignatureVerificationFailed {
		t.Errorf("expected ErrSignatureVerificationFailed for tampered recipient, got %v", err)
	}
}

func TestVerifyFailsMalformedBase64(t *testing.T) {
	pub, priv := fixedKeypair(t)
	signable := sampleSignable()
	sig, err := Sign(signable, priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	_ = sig

	r := buildRecord(signable, "not-valid-base64!!!")
	if err := Verify(r, pub); err != cclinkerrors.ErrSignatureVerificationFailed {
		t.Errorf("expected ErrSignatureVerificationFailed for malformed base64, got %v", err)
	}
}

func TestVerifyFailsWrongLengthSignature(t *testing.T) {
	pub, _ := fixedKeypair(t)
	signable := sampleSignable()
	r := buildRecord(signable, "dGVzdA==") // valid base64, wrong length

	if err := Verify(r, pub); err != cclinkerrors.ErrSignatureVerificationFailed {
		t.Errorf("expected ErrSignatureVerificationFailed for wrong-length signature, got %v", err)
	}
}

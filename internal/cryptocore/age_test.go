package cryptocore

import (
	"bytes"
	"crypto/ed25519"
	"testing"
)

func TestAgeEncryptDecryptRoundTrip(t *testing.T) {
	seed := fixedSeed()
	scalar, err := ScalarFromSeed(seed)
	if err != nil {
		t.Fatalf("ScalarFromSeed failed: %v", err)
	}
	pub, err := MontgomeryFromScalar(scalar)
	if err != nil {
		t.Fatalf("MontgomeryFromScalar failed: %v", err)
	}

	identity, err := AgeIdentity(scalar)
	if err != nil {
		t.Fatalf("AgeIdentity failed: %v", err)
	}
	recipient, err := AgeRecipient(pub)
	if err != nil {
		t.Fatalf("AgeRecipient failed: %v", err)
	}

	plaintext := []byte("session-abc123")
	ciphertext, err := Encrypt(plaintext, recipient)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	decrypted, err := Decrypt(ciphertext, identity)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}

	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("decrypted = %q; want %q", decrypted, plaintext)
	}
}

func TestAgeEncryptProducesDifferentCiphertext(t *testing.T) {
	seed := fixedSeed()
	scalar, _ := ScalarFromSeed(seed)
	pub, _ := MontgomeryFromScalar(scalar)
	recipient, err := AgeRecipient(pub)
	if err != nil {
		t.Fatalf("AgeRecipient failed: %v", err)
	}

	plaintext := []byte("session-abc123")
	ct1, err := Encrypt(plaintext, recipient)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	ct2, err := Encrypt(plaintext, recipient)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if bytes.Equal(ct1, ct2) {
		t.Error("two encryptions to the same recipient must produce different ciphertext (ephemeral keys)")
	}
}

func TestAgeDecryptWrongKeyFails(t *testing.T) {
	seedA := fixedSeed()
	seedB := make([]byte, ed25519.SeedSize)
	for i := range seedB {
		seedB[i] = 99
	}

	scalarA, _ := ScalarFromSeed(seedA)
	pubA, _ := MontgomeryFromScalar(scalarA)
	recipientA, _ := AgeRecipient(pubA)

	scalarB, _ := ScalarFromSeed(seedB)
	identityB, err := AgeIdentity(scalarB)
	if err != nil {
		t.Fatalf("AgeIdentity failed: %v", err)
	}

	ciphertext, err := Encrypt([]byte("secret session"), recipientA)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if _, err := Decrypt(ciphertext, identityB); err == nil {
		t.Error("decryption with the wrong identity must fail")
	}
}

func TestRecipientFromPubkeyRoundTrip(t *testing.T) {
	seed := fixedSeed()
	edPub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	scalar, _ := ScalarFromSeed(seed)

	recipient, err := RecipientFromPubkey(edPub)
	if err != nil {
		t.Fatalf("RecipientFromPubkey failed: %v", err)
	}

	plaintext := []byte("round-trip test")
	ciphertext, err := Encrypt(plaintext, recipient)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	identity, err := AgeIdentity(scalar)
	if err != nil {
		t.Fatalf("AgeIdentity failed: %v", err)
	}
	decrypted, err := Decrypt(ciphertext, identity)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}

	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("decrypted = %q; want %q", decrypted, plaintext)
	}
}

package transport

import (
	"context"
	"crypto/ed25519"
	"testing"

	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
	"github.com/johnzilla/cclink/internal/record"
)

func testIdentity(t *testing.T, seedByte byte) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = seedByte
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return priv.Public().(ed25519.PublicKey), priv
}

func signedRecord(t *testing.T, priv ed25519.PrivateKey, pubkeyZ32 string, createdAt uint64) *record.HandoffRecord {
	t.Helper()
	signable := record.Signable{
		Blob:      "dGVzdGJsb2I=",
		Burn:      false,
		CreatedAt: createdAt,
		Hostname:  "",
		Project:   "",
		Pubkey:    pubkeyZ32,
		TTL:       3600,
	}
	sig, err := record.Sign(signable, priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	return &record.HandoffRecord{
		Blob:      signable.Blob,
		Burn:      signable.Burn,
		CreatedAt: signable.CreatedAt,
		Hostname:  signable.Hostname,
		Project:   signable.Project,
		Pubkey:    signable.Pubkey,
		Signature: sig,
		TTL:       signable.TTL,
	}
}

func TestClientPublishResolveRoundTrip(t *testing.T) {
	ctx := context.Background()
	pub, priv := testIdentity(t, 1)
	client := NewClient(NewInMemoryStore())

	rec := signedRecord(t, priv, "identity-z32", 1700000000)
	if err := client.Publish(ctx, priv, rec, rec.CreatedAt); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	got, err := client.Resolve(ctx, pub, "identity-z32")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Blob != rec.Blob || got.CreatedAt != rec.CreatedAt {
		t.Errorf("resolved record = %+v, want %+v", got, rec)
	}
}

func TestClientResolveMissingIsRecordNotFound(t *testing.T) {
	ctx := context.Background()
	pub, _ := testIdentity(t, 2)
	client := NewClient(NewInMemoryStore())

	_, err := client.Resolve(ctx, pub, "nobody-published-here")
	if err != cclinkerrors.ErrRecordNotFound {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestClientPublishRejectsStaleCAS(t *testing.T) {
	ctx := context.Background()
	_, priv := testIdentity(t, 3)
	client := NewClient(NewInMemoryStore())

	rec1 := signedRecord(t, priv, "identity-z32", 1700000100)
	if err := client.Publish(ctx, priv, rec1, rec1.CreatedAt); err != nil {
		t.Fatalf("first Publish failed: %v", err)
	}

	rec2 := signedRecord(t, priv, "identity-z32", 1700000050) // older timestamp
	err := client.Publish(ctx, priv, rec2, rec2.CreatedAt)
	if err == nil {
		t.Fatal("expected stale CAS publish to fail")
	}
}

func TestClientRevokeThenResolveIsRecordNotFound(t *testing.T) {
	ctx := context.Background()
	pub, priv := testIdentity(t, 4)
	client := NewClient(NewInMemoryStore())

	rec := signedRecord(t, priv, "identity-z32", 1700000000)
	if err := client.Publish(ctx, priv, rec, rec.CreatedAt); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := client.Revoke(ctx, priv, "identity-z32", rec.CreatedAt+1); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	_, err := client.Resolve(ctx, pub, "identity-z32")
	if err != cclinkerrors.ErrRecordNotFound {
		t.Errorf("expected ErrRecordNotFound after revoke, got %v", err)
	}
}

func TestClientResolveDetectsTamperedPacketSignature(t *testing.T) {
	ctx := context.Background()
	pub, priv := testIdentity(t, 5)
	store := NewInMemoryStore()
	client := NewClient(store)

	rec := signedRecord(t, priv, "identity-z32", 1700000000)
	if err := client.Publish(ctx, priv, rec, rec.CreatedAt); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	stored, err := store.Get(ctx, "identity-z32")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	stored.Signature[0] ^= 0xFF
	if err := store.Put(ctx, "identity-z32", stored); err != nil {
		t.Fatalf("Put of tampered packet failed: %v", err)
	}

	if _, err := client.Resolve(ctx, pub, "identity-z32"); err == nil {
		t.Error("expected Resolve to reject a packet with a tampered signature")
	}
}

func TestClientResolveRejectsWrongIdentity(t *testing.T) {
	ctx := context.Background()
	_, priv := testIdentity(t, 6)
	otherPub, _ := testIdentity(t, 7)
	client := NewClient(NewInMemoryStore())

	rec := signedRecord(t, priv, "identity-z32", 1700000000)
	if err := client.Publish(ctx, priv, rec, rec.CreatedAt); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if _, err := client.Resolve(ctx, otherPub, "identity-z32"); err == nil {
		t.Error("expected Resolve to fail when verifying against the wrong public key")
	}
}

package transport

import (
	"bytes"
	"crypto/ed25519"
	"strings"
	"testing"

	"github.com/miekg/dns"
)

func TestChunkStringShort(t *testing.T) {
	chunks := chunkString("hello", 255)
	if len(chunks) != 1 || chunks[0] != "hello" {
		t.Fatalf("unexpected chunks: %v", chunks)
	}
}

func TestChunkStringEmpty(t *testing.T) {
	if chunks := chunkString("", 255); chunks != nil {
		t.Fatalf("expected nil chunks for empty string, got %v", chunks)
	}
}

func TestChunkStringSplitsOnBoundary(t *testing.T) {
	payload := strings.Repeat("a", 600)
	chunks := chunkString(payload, 255)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 255 || len(chunks[1]) != 255 || len(chunks[2]) != 90 {
		t.Fatalf("unexpected chunk lengths: %d %d %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
	if chunks[0]+chunks[1]+chunks[2] != payload {
		t.Fatal("reassembled chunks do not match original payload")
	}
}

func TestBuildAndExtractPacketRoundTrip(t *testing.T) {
	payload := []byte(`{"blob":"dGVzdA==","ttl":3600}`)
	msg := buildPacket(payload)
	wire, err := msg.Pack()
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	roundTripped := new(dns.Msg)
	if err := roundTripped.Unpack(wire); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	got, err := extractPayload(roundTripped)
	if err != nil {
		t.Fatalf("extractPayload failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("extracted payload = %q, want %q", got, payload)
	}
}

func TestBuildPacketLargePayloadReassembles(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 900)
	msg := buildPacket(payload)
	wire, err := msg.Pack()
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	roundTripped := new(dns.Msg)
	if err := roundTripped.Unpack(wire); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	got, err := extractPayload(roundTripped)
	if err != nil {
		t.Fatalf("extractPayload failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("large payload did not reassemble correctly across TXT chunks")
	}
}

func TestExtractPayloadMissingLabel(t *testing.T) {
	msg := buildPacket(nil)
	if _, err := extractPayload(msg); err == nil {
		t.Fatal("expected error extracting payload from an empty packet")
	}
}

func TestSignAndVerifyPayload(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = 11
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	wire := []byte("packet-bytes")
	sig := signPayload(priv, 42, wire)
	if !verifyPayload(pub, 42, wire, sig) {
		t.Error("expected signature to verify")
	}
	if verifyPayload(pub, 43, wire, sig) {
		t.Error("expected signature to fail against a different timestamp")
	}
}

package cryptocore

import (
	"bytes"
	"strings"
	"testing"
)

func TestZ32RoundTrip(t *testing.T) {
	pub := make([]byte, 32)
	for i := range pub {
		pub[i] = byte(i * 7)
	}

	encoded := EncodeZ32(pub)
	if len(encoded) != 52 {
		t.Errorf("z32 length = %d; want 52", len(encoded))
	}
	if strings.ToLower(encoded) != encoded {
		t.Error("z32 encoding must be lower-case")
	}

	decoded, err := DecodeZ32(encoded)
	if err != nil {
		t.Fatalf("DecodeZ32 failed: %v", err)
	}
	if !bytes.Equal(decoded, pub) {
		t.Error("round-tripped bytes do not match original public key")
	}
}

func TestDecodeZ32Invalid(t *testing.T) {
	if _, err := DecodeZ32("not-valid-z32!!"); err == nil {
		t.Error("expected error for invalid z32 string")
	}
}

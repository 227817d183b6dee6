package cryptocore

import "encoding/base32"

// z32Alphabet is the human-oriented base32 variant ("zbase32") used to
// render Ed25519 public keys: lower-case, chosen to avoid visually
// confusable characters. No third-party z32 implementation appears in the
// reference corpus, so this is a direct stdlib encoding.Base32 instantiation
// with the zbase32 alphabet substituted in, rather than a hand-rolled codec.
const z32Alphabet = "ybndrfg8ejkmcpqxot1uwisza345h769"

var z32Encoding = base32.NewEncoding(z32Alphabet).WithPadding(base32.NoPadding)

// EncodeZ32 renders a 32-byte Ed25519 public key as its canonical 52-character
// lower-case z32 string.
func EncodeZ32(pub []byte) string {
	return z32Encoding.EncodeToString(pub)
}

// DecodeZ32 parses a z32-encoded public key string back into 32 raw bytes.
func DecodeZ32(s string) ([]byte, error) {
	return z32Encoding.DecodeString(s)
}

// Package record defines the HandoffRecord wire format (the signed,
// DHT-published envelope) and the encrypted Payload it carries.
package record

// Payload is the secret carried inside a HandoffRecord's encrypted blob:
// the session fact published by Discovery. Single-character JSON keys keep
// the encrypted payload small enough to stay within the DHT signed-packet
// size budget once base64-encoded.
type Payload struct {
	Hostname  string `json:"h"`
	Project   string `json:"p"`
	SessionID string `json:"s"`
}

// Signable is every HandoffRecord field except the signature itself, in
// alphabetical field-declaration order. Go's encoding/json marshals struct
// fields in declaration order, so this ordering is what makes canonical
// JSON output deterministic without a runtime sort or a "preserve field
// order" flag.
//
// v1.1 change: burn and recipient are part of the signed envelope. A v1.0
// record signed without them is not supported; it simply expires via TTL.
type Signable struct {
	Blob      string  `json:"blob"`
	Burn      bool    `json:"burn"`
	CreatedAt uint64  `json:"created_at"`
	Hostname  string  `json:"hostname"`
	PinSalt   *string `json:"pin_salt"`
	Project   string  `json:"project"`
	Pubkey    string  `json:"pubkey"`
	Recipient *string `json:"recipient"`
	TTL       uint64  `json:"ttl"`
}

// HandoffRecord is the complete signed record published to the DHT: the
// Signable view plus the Ed25519 signature over its canonical JSON.
type HandoffRecord struct {
	Blob      string  `json:"blob"`
	Burn      bool    `json:"burn"`
	CreatedAt uint64  `json:"created_at"`
	Hostname  string  `json:"hostname"`
	PinSalt   *string `json:"pin_salt,omitempty"`
	Project   string  `json:"project"`
	Pubkey    string  `json:"pubkey"`
	Recipient *string `json:"recipient,omitempty"`
	Signature string  `json:"signature"`
	TTL       uint64  `json:"ttl"`
}

// ToSignable extracts the signable view of a HandoffRecord. hostname and
// project are always empty in the current format (real values live inside
// the encrypted Payload) but remain part of the signed region for
// compatibility with earlier format versions.
func (r *HandoffRecord) ToSignable() Signable {
	return Signable{
		Blob:      r.Blob,
		Burn:      r.Burn,
		CreatedAt: r.CreatedAt,
		Hostname:  r.Hostname,
		PinSalt:   r.PinSalt,
		Project:   r.Project,
		Pubkey:    r.Pubkey,
		Recipient: r.Recipient,
		TTL:       r.TTL,
	}
}

// Package transport implements DhtTransport: publishing, resolving, and
// revoking signed handoff packets against an identity-keyed store.
//
// The production backing store would be the Mainline DHT via PKARR; this
// package addresses it entirely behind the Store interface so the signing,
// packet-framing, and retry logic can be exercised against InMemoryStore
// without a live network.
package transport

import (
	"context"
	"crypto/ed25519"
	"encoding/json"

	"github.com/miekg/dns"

	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
	"github.com/johnzilla/cclink/internal/record"
)

// StoredPacket is a signed packet as a Store persists it: the wire-format
// DNS message plus the CAS sequence number and its signature.
type StoredPacket struct {
	Timestamp uint64
	Wire      []byte
	Signature []byte
}

// Store is the pluggable backing store for one signed packet per identity.
// Put must reject any pkt whose Timestamp does not strictly exceed the
// timestamp currently stored for pubkeyZ32, returning ErrStaleCAS; this is
// what makes publish serializable without the caller holding a lock.
type Store interface {
	Get(ctx context.Context, pubkeyZ32 string) (*StoredPacket, error)
	Put(ctx context.Context, pubkeyZ32 string, pkt *StoredPacket) error
}

// Client is the DhtTransport: it builds, signs, publishes, resolves, and
// revokes handoff packets against a Store, retrying transient failures
// with exponential backoff.
type Client struct {
	store Store
}

// NewClient wraps store with the packet framing, signing, and retry logic
// common to any backing store implementation.
func NewClient(store Store) *Client {
	return &Client{store: store}
}

// Publish signs rec's packet under timestamp (the CAS value, ordinarily
// rec.CreatedAt) and stores it, retrying transient Store errors.
func (c *Client) Publish(ctx context.Context, priv ed25519.PrivateKey, rec *record.HandoffRecord, timestamp uint64) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return cclinkerrors.NewTransportError("publish", rec.Pubkey, err)
	}

	wire, err := buildPacket(payload).Pack()
	if err != nil {
		return cclinkerrors.NewTransportError("publish", rec.Pubkey, err)
	}

	pkt := &StoredPacket{
		Timestamp: timestamp,
		Wire:      wire,
		Signature: signPayload(priv, timestamp, wire),
	}

	if err := c.retryPut(ctx, rec.Pubkey, pkt); err != nil {
		return cclinkerrors.NewTransportError("publish", rec.Pubkey, err)
	}
	return nil
}

// Revoke publishes an empty packet under the same identity, the signal
// that subsequent resolves must treat as an absent record.
func (c *Client) Revoke(ctx context.Context, priv ed25519.PrivateKey, pubkeyZ32 string, timestamp uint64) error {
	wire, err := buildPacket(nil).Pack()
	if err != nil {
		return cclinkerrors.NewTransportError("revoke", pubkeyZ32, err)
	}

	pkt := &StoredPacket{
		Timestamp: timestamp,
		Wire:      wire,
		Signature: signPayload(priv, timestamp, wire),
	}

	if err := c.retryPut(ctx, pubkeyZ32, pkt); err != nil {
		return cclinkerrors.NewTransportError("revoke", pubkeyZ32, err)
	}
	return nil
}

// Resolve fetches the packet published under pubkeyZ32, verifies its
// packet-level signature and the record's own signature, and returns the
// decoded HandoffRecord. Any missing label, parse failure, or signature
// mismatch collapses to ErrRecordNotFound or a wrapped TransportError;
// RecordNotFound is never retried.
func (c *Client) Resolve(ctx context.Context, pub ed25519.PublicKey, pubkeyZ32 string) (*record.HandoffRecord, error) {
	var stored *StoredPacket
	err := retry(ctx, func() error {
		pkt, err := c.store.Get(ctx, pubkeyZ32)
		if err != nil {
			return err
		}
		stored = pkt
		return nil
	})
	if err != nil {
		if cclinkerrors.IsRecordNotFound(err) {
			return nil, cclinkerrors.ErrRecordNotFound
		}
		return nil, cclinkerrors.NewTransportError("resolve", pubkeyZ32, err)
	}

	if !verifyPayload(pub, stored.Timestamp, stored.Wire, stored.Signature) {
		return nil, cclinkerrors.NewTransportError("resolve", pubkeyZ32, cclinkerrors.ErrSignatureVerificationFailed)
	}

	msg := new(dns.Msg)
	if err := msg.Unpack(stored.Wire); err != nil {
		return nil, cclinkerrors.ErrRecordNotFound
	}

	payload, err := extractPayload(msg)
	if err != nil {
		return nil, cclinkerrors.ErrRecordNotFound
	}

	var rec record.HandoffRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, cclinkerrors.ErrRecordNotFound
	}

	if err := record.Verify(&rec, pub); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) retryPut(ctx context.Context, pubkeyZ32 string, pkt *StoredPacket) error {
	return retry(ctx, func() error {
		return c.store.Put(ctx, pubkeyZ32, pkt)
	})
}

package orchestrator

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"time"

	"github.com/johnzilla/cclink/internal/cryptocore"
	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
	"github.com/johnzilla/cclink/internal/record"
)

// PickupOptions configures Pickup.
type PickupOptions struct {
	// PublisherZ32 is the identity to resolve.
	PublisherZ32 string
	// Yes skips the launch confirmation for non-interactive use.
	Yes bool
	// NoLaunch resolves and decrypts but does not exec the agent binary;
	// used by list/inspect-style callers that only want the session facts.
	NoLaunch bool
}

// PickupResult reports what pickup resolved, whether it decrypted it, and
// whether it launched the agent.
type PickupResult struct {
	SessionID    string
	ProjectPath  string
	Hostname     string
	NotForMe     bool
	Launched     bool
	RecordBurned bool
}

// Pickup resolves a published record, decrypts it under whichever mode the
// record carries, and (unless suppressed) resumes the referenced session.
func (o *Orchestrator) Pickup(opts PickupOptions) (PickupResult, error) {
	ownPub, ownPriv, err := o.loadIdentity()
	if err != nil {
		return PickupResult{}, err
	}
	ownZ32 := cryptocore.EncodeZ32(ownPub)

	targetPub, err := cryptocore.DecodeZ32(opts.PublisherZ32)
	if err != nil {
		return PickupResult{}, fmt.Errorf("invalid public key: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), transportBudget)
	defer cancel()
	start := o.now()
	rec, err := o.Transport.Resolve(ctx, targetPub, opts.PublisherZ32)
	o.Metrics.ResolveLatency.Observe(o.now().Sub(start).Seconds())
	if err != nil {
		o.Metrics.ResolveTotal.WithLabelValues("error").Inc()
		o.Metrics.PickupTotal.WithLabelValues("error").Inc()
		return PickupResult{}, err
	}
	o.Metrics.ResolveTotal.WithLabelValues("ok").Inc()

	if o.isExpired(rec) {
		o.Metrics.PickupTotal.WithLabelValues("expired").Inc()
		return PickupResult{}, cclinkerrors.ErrHandoffExpired
	}

	payloadJSON, notForMe, err := o.decryptRecord(rec, ownZ32, ownPriv)
	if err != nil {
		o.Metrics.PickupTotal.WithLabelValues("error").Inc()
		return PickupResult{}, err
	}
	if notForMe {
		o.Metrics.PickupTotal.WithLabelValues("not_for_me").Inc()
		return PickupResult{NotForMe: true}, nil
	}

	payload, err := parsePayload(payloadJSON)
	if err != nil {
		o.Metrics.PickupTotal.WithLabelValues("error").Inc()
		return PickupResult{}, err
	}

	result := PickupResult{
		SessionID:   payload.SessionID,
		ProjectPath: payload.Project,
		Hostname:    payload.Hostname,
	}

	if !opts.Yes {
		if !o.Prompt.IsTerminal() {
			o.Metrics.PickupTotal.WithLabelValues("error").Inc()
			return PickupResult{}, cclinkerrors.ErrNotATerminal
		}
		proceed, err := o.Prompt.Confirm(fmt.Sprintf("Resume session %s? [Y/n] ", payload.SessionID))
		if err != nil {
			o.Metrics.PickupTotal.WithLabelValues("error").Inc()
			return result, err
		}
		if !proceed {
			o.Metrics.PickupTotal.WithLabelValues("cancelled").Inc()
			return result, cclinkerrors.ErrCancelled
		}
	}

	if rec.Burn {
		revokeCtx, revokeCancel := context.WithTimeout(context.Background(), transportBudget)
		if err := o.Transport.Revoke(revokeCtx, ownPriv, opts.PublisherZ32, rec.CreatedAt+1); err == nil {
			result.RecordBurned = true
		}
		revokeCancel()
	}

	if opts.NoLaunch {
		o.Metrics.PickupTotal.WithLabelValues("ok").Inc()
		return result, nil
	}

	if err := o.Launch(payload.SessionID); err != nil {
		o.Metrics.PickupTotal.WithLabelValues("error").Inc()
		return result, err
	}
	result.Launched = true
	o.Metrics.PickupTotal.WithLabelValues("ok").Inc()
	return result, nil
}

func (o *Orchestrator) isExpired(rec *record.HandoffRecord) bool {
	createdAt := time.Unix(int64(rec.CreatedAt), 0)
	return o.now().After(createdAt.Add(time.Duration(rec.TTL) * time.Second))
}

// decryptRecord picks the right decrypt strategy for rec and returns the
// decrypted payload JSON. notForMe is true when a cross-identity share
// attempt fails to decrypt, which is not an error: the record simply isn't
// addressed to this identity.
func (o *Orchestrator) decryptRecord(rec *record.HandoffRecord, ownZ32 string, ownPriv ed25519.PrivateKey) ([]byte, bool, error) {
	switch {
	case rec.PinSalt != nil:
		if !o.Prompt.IsTerminal() {
			return nil, false, cclinkerrors.ErrNotATerminal
		}
		pin, err := o.Prompt.ReadSecret("PIN: ")
		if err != nil {
			return nil, false, err
		}
		payload, err := decryptWithPIN(rec.Blob, *rec.PinSalt, pin)
		if err != nil {
			return nil, false, cclinkerrors.ErrDecryptionFailed
		}
		return payload, false, nil

	case rec.Recipient != nil:
		if rec.Pubkey == ownZ32 {
			return nil, false, cclinkerrors.ErrCannotDecryptOwnShare
		}
		payload, err := decryptWithIdentity(rec.Blob, ownPriv.Seed())
		if err != nil {
			return nil, true, nil
		}
		return payload, false, nil

	default:
		if rec.Pubkey != ownZ32 {
			payload, err := decryptWithIdentity(rec.Blob, ownPriv.Seed())
			if err != nil {
				return nil, true, nil
			}
			return payload, false, nil
		}
		payload, err := decryptWithIdentity(rec.Blob, ownPriv.Seed())
		if err != nil {
			return nil, false, cclinkerrors.ErrDecryptionFailed
		}
		return payload, false, nil
	}
}

// parsePayload decodes the decrypted blob as record.Payload, falling back
// to treating the raw bytes as a bare session ID for forward compatibility
// with simpler payload encodings.
func parsePayload(data []byte) (record.Payload, error) {
	var payload record.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return record.Payload{SessionID: string(data)}, nil
	}
	if payload.SessionID == "" {
		return record.Payload{}, fmt.Errorf("decrypted payload has no session id")
	}
	return payload, nil
}

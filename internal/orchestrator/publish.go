package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/johnzilla/cclink/internal/cryptocore"
	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
	"github.com/johnzilla/cclink/internal/record"
)

// PublishOptions configures Publish.
type PublishOptions struct {
	// SessionID, if set, is used directly instead of running Discovery.
	SessionID string
	// CwdFilter restricts Discovery to sessions under this project path.
	CwdFilter string
	// TTL is the application-level lifetime of the record; zero means
	// Orchestrator.Config.DefaultTTL.
	TTL time.Duration
	// Burn marks the record for best-effort revoke-after-pickup.
	Burn bool
	// PIN, if non-empty, selects PIN-protected encryption.
	PIN string
	// ShareZ32, if non-empty, selects shared encryption to that identity.
	ShareZ32 string
	// Yes skips the session picker confirmation for non-interactive use.
	Yes bool
}

// PublishResult is what a successful publish reports back to the caller.
type PublishResult struct {
	PickupCommand string
	Record        *record.HandoffRecord
}

// Publish gathers a session, encrypts it under the chosen mode, signs and
// publishes the resulting record.
func (o *Orchestrator) Publish(opts PublishOptions) (PublishResult, error) {
	if err := validateEncryptionModes(opts); err != nil {
		return PublishResult{}, err
	}

	pub, priv, err := o.loadIdentity()
	if err != nil {
		return PublishResult{}, err
	}
	ownZ32 := cryptocore.EncodeZ32(pub)

	candidate, err := o.resolveSessionCandidate(opts)
	if err != nil {
		return PublishResult{}, err
	}

	hostname, _ := os.Hostname()
	payload := record.Payload{
		Hostname:  hostname,
		Project:   candidate.ProjectPath,
		SessionID: candidate.SessionID,
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return PublishResult{}, err
	}

	var blob string
	var pinSalt *string
	var recipientField *string

	switch {
	case opts.PIN != "":
		if err := cryptocore.CheckPINStrength(opts.PIN, o.Config.PinMinScore); err != nil {
			return PublishResult{}, err
		}
		b, saltB64, err := encryptForPIN(payloadJSON, opts.PIN)
		if err != nil {
			return PublishResult{}, err
		}
		blob, pinSalt = b, &saltB64
	case opts.ShareZ32 != "":
		b, err := encryptForRecipient(payloadJSON, opts.ShareZ32)
		if err != nil {
			return PublishResult{}, err
		}
		blob, recipientField = b, &opts.ShareZ32
	default:
		b, err := encryptForSelf(payloadJSON, pub)
		if err != nil {
			return PublishResult{}, err
		}
		blob = b
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = o.Config.DefaultTTL
	}

	signable := record.Signable{
		Blob:      blob,
		Burn:      opts.Burn,
		CreatedAt: uint64(o.now().Unix()),
		Hostname:  "",
		PinSalt:   pinSalt,
		Project:   "",
		Pubkey:    ownZ32,
		Recipient: recipientField,
		TTL:       uint64(ttl.Seconds()),
	}
	sig, err := record.Sign(signable, priv)
	if err != nil {
		return PublishResult{}, err
	}

	rec := &record.HandoffRecord{
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

	ctx, cancel := context.WithTimeout(context.Background(), transportBudget)
	defer cancel()
	start := o.now()
	err = o.Transport.Publish(ctx, priv, rec, rec.CreatedAt)
	o.Metrics.PublishLatency.Observe(o.now().Sub(start).Seconds())
	if err != nil {
		o.Metrics.PublishTotal.WithLabelValues("error").Inc()
		return PublishResult{}, err
	}
	o.Metrics.PublishTotal.WithLabelValues("ok").Inc()

	return PublishResult{
		PickupCommand: fmt.Sprintf("cclink pickup %s", ownZ32),
		Record:        rec,
	}, nil
}

func validateEncryptionModes(opts PublishOptions) error {
	modes := 0
	if opts.Burn {
		modes++
	}
	if opts.PIN != "" {
		modes++
	}
	if opts.ShareZ32 != "" {
		modes++
	}
	// Burn is a separate axis from encryption mode except where the spec
	// explicitly pairs it with --share and --pin as mutually exclusive.
	if opts.ShareZ32 != "" && (opts.Burn || opts.PIN != "") {
		return cclinkerrors.ErrMutuallyExclusive
	}
	if opts.Burn && opts.PIN != "" {
		return cclinkerrors.ErrMutuallyExclusive
	}
	return nil
}

func (o *Orchestrator) resolveSessionCandidate(opts PublishOptions) (SessionCandidate, error) {
	if opts.SessionID != "" {
		candidates, err := o.Discover(opts.CwdFilter)
		if err == nil {
			for _, c := range candidates {
				if c.SessionID == opts.SessionID {
					return c, nil
				}
			}
		}
		return SessionCandidate{SessionID: opts.SessionID}, nil
	}

	candidates, err := o.Discover(opts.CwdFilter)
	if err != nil {
		return SessionCandidate{}, err
	}
	if len(candidates) == 0 {
		return SessionCandidate{}, cclinkerrors.ErrSessionNotFound
	}
	if len(candidates) == 1 || opts.Yes || !o.Prompt.IsTerminal() {
		return candidates[0], nil
	}

	idx, err := o.Prompt.Pick(candidates)
	if err != nil {
		return SessionCandidate{}, err
	}
	if idx < 0 || idx >= len(candidates) {
		return SessionCandidate{}, cclinkerrors.ErrSessionNotFound
	}
	return candidates[idx], nil
}

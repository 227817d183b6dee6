package orchestrator

import (
	"context"
	"time"

	"github.com/johnzilla/cclink/internal/cryptocore"
	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
)

// ListItem describes the caller's own currently-published record, if any.
type ListItem struct {
	Exists          bool
	ProjectDisplay  string
	Age             time.Duration
	TTLRemaining    time.Duration
	RecipientPrefix string
	Burn            bool
}

// List resolves the caller's own record and summarizes it without
// requiring a PIN or passphrase prompt for the encrypted payload: when the
// record is self-encrypted, List opportunistically decrypts it to show the
// project path; otherwise it reports the encryption mode instead.
func (o *Orchestrator) List() (ListItem, error) {
	ownPub, ownPriv, err := o.loadIdentity()
	if err != nil {
		return ListItem{}, err
	}
	ownZ32 := cryptocore.EncodeZ32(ownPub)

	ctx, cancel := context.WithTimeout(context.Background(), transportBudget)
	defer cancel()
	start := o.now()
	rec, err := o.Transport.Resolve(ctx, ownPub, ownZ32)
	o.Metrics.ResolveLatency.Observe(o.now().Sub(start).Seconds())
	if err != nil {
		if cclinkerrors.IsRecordNotFound(err) {
			o.Metrics.ResolveTotal.WithLabelValues("not_found").Inc()
			return ListItem{Exists: false}, nil
		}
		o.Metrics.ResolveTotal.WithLabelValues("error").Inc()
		return ListItem{}, err
	}
	o.Metrics.ResolveTotal.WithLabelValues("ok").Inc()

	if o.isExpired(rec) {
		return ListItem{Exists: false}, nil
	}

	item := ListItem{
		Exists: true,
		Age:    o.now().Sub(time.Unix(int64(rec.CreatedAt), 0)),
		Burn:   rec.Burn,
	}
	item.TTLRemaining = time.Duration(rec.TTL)*time.Second - item.Age
	if item.TTLRemaining < 0 {
		item.TTLRemaining = 0
	}

	switch {
	case rec.PinSalt != nil:
		item.ProjectDisplay = "(PIN-protected)"
	case rec.Recipient != nil:
		item.ProjectDisplay = "(shared)"
		if len(*rec.Recipient) >= 8 {
			item.RecipientPrefix = (*rec.Recipient)[:8]
		} else {
			item.RecipientPrefix = *rec.Recipient
		}
	default:
		payload, err := decryptWithIdentity(rec.Blob, ownPriv.Seed())
		if err != nil {
			item.ProjectDisplay = "(encrypted)"
			break
		}
		p, err := parsePayload(payload)
		if err != nil {
			item.ProjectDisplay = "(encrypted)"
			break
		}
		item.ProjectDisplay = p.Project
	}

	return item, nil
}

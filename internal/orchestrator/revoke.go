package orchestrator

import (
	"context"

	"github.com/johnzilla/cclink/internal/cryptocore"
	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
)

// RevokeOptions configures Revoke.
type RevokeOptions struct {
	// Yes skips the confirmation prompt for non-interactive use.
	Yes bool
}

// Revoke publishes an empty packet under the caller's own identity,
// invalidating any currently-active record.
func (o *Orchestrator) Revoke(opts RevokeOptions) error {
	ownPub, ownPriv, err := o.loadIdentity()
	if err != nil {
		return err
	}
	ownZ32 := cryptocore.EncodeZ32(ownPub)

	ctx, cancel := context.WithTimeout(context.Background(), transportBudget)
	start := o.now()
	rec, err := o.Transport.Resolve(ctx, ownPub, ownZ32)
	o.Metrics.ResolveLatency.Observe(o.now().Sub(start).Seconds())
	cancel()
	if err != nil {
		if cclinkerrors.IsRecordNotFound(err) {
			o.Metrics.ResolveTotal.WithLabelValues("not_found").Inc()
			return nil
		}
		o.Metrics.ResolveTotal.WithLabelValues("error").Inc()
		return err
	}
	o.Metrics.ResolveTotal.WithLabelValues("ok").Inc()

	if !opts.Yes {
		if !o.Prompt.IsTerminal() {
			o.Metrics.RevokeTotal.WithLabelValues("error").Inc()
			return cclinkerrors.ErrNotATerminal
		}
		proceed, err := o.Prompt.Confirm("Revoke your active handoff record? [y/N] ")
		if err != nil {
			o.Metrics.RevokeTotal.WithLabelValues("error").Inc()
			return err
		}
		if !proceed {
			o.Metrics.RevokeTotal.WithLabelValues("cancelled").Inc()
			return cclinkerrors.ErrCancelled
		}
	}

	revokeCtx, revokeCancel := context.WithTimeout(context.Background(), transportBudget)
	defer revokeCancel()
	err = o.Transport.Revoke(revokeCtx, ownPriv, ownZ32, rec.CreatedAt+1)
	if err != nil {
		o.Metrics.RevokeTotal.WithLabelValues("error").Inc()
		return err
	}
	o.Metrics.RevokeTotal.WithLabelValues("ok").Inc()
	return nil
}

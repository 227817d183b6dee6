package transport

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
	"github.com/johnzilla/cclink/internal/metrics"
)

const (
	backoffInitialInterval = 2 * time.Second
	backoffMultiplier      = 2
	backoffMaxInterval     = 8 * time.Second
	backoffMaxElapsedTime  = 30 * time.Second
)

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = backoffInitialInterval
	b.Multiplier = backoffMultiplier
	b.MaxInterval = backoffMaxInterval
	b.MaxElapsedTime = backoffMaxElapsedTime
	b.RandomizationFactor = 0
	return b
}

// retry runs op under the standard publish/resolve/revoke budget
// (initial 2s, x2, max 8s, 30s total), classifying ErrRecordNotFound as
// permanent so it breaks out of the loop on the first attempt.
func retry(ctx context.Context, op func() error) error {
	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if cclinkerrors.IsRecordNotFound(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.RetryNotify(wrapped, backoff.WithContext(newBackOff(), ctx), func(err error, _ time.Duration) {
		metrics.Default().RetryAttempts.Inc()
	})
}

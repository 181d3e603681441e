package utils

import (
	"context"
	"time"

	"porchlite-server/pkg/logger"
)

// Retry policy for calls to external collaborators (database, mail, image
// host). One shared implementation; handlers that opt in wrap their call
// instead of hand-rolling timeouts.

type RetryPolicy struct {
	Attempts int           // total attempts, including the first
	Backoff  time.Duration // linear: Backoff * attempt between tries
	Timeout  time.Duration // per-attempt deadline
}

// DefaultRetryPolicy matches the portal's historical behavior: three tries
// with linear backoff.
var DefaultRetryPolicy = RetryPolicy{
	Attempts: 3,
	Backoff:  500 * time.Millisecond,
	Timeout:  10 * time.Second,
}

// Do runs fn until it succeeds or the attempts are exhausted, returning the
// last error. Each attempt gets its own deadline derived from ctx.
func (p RetryPolicy) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		attemptCtx := ctx
		var cancel context.CancelFunc
		if p.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		}
		lastErr = fn(attemptCtx)
		if cancel != nil {
			cancel()
		}
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt < attempts {
			logger.Log.WithError(lastErr).Warnf("%s failed (attempt %d/%d), retrying", op, attempt, attempts)
			select {
			case <-time.After(p.Backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return lastErr
}

package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a transient failure that [Retry] may repeat. The
// dataset client wraps network errors, 429 and 5xx in it; the Redis cache
// wraps dropped connections.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is wrapped in a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Retry calls fn until it succeeds, returns an error that is not
// retryable, or has been called attempts times. The wait starts at delay
// and doubles after each failure. A cancelled ctx ends the wait early with
// ctx.Err(); otherwise the last error is returned.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for left := max(attempts, 1); ; delay *= 2 {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if left--; left == 0 {
			return err
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnavailable reports a remote cache that cannot be reached.
	ErrUnavailable = errors.New("cache unavailable")

	// ErrClosed reports use of a closed cache.
	ErrClosed = errors.New("cache closed")
)

// RetryableError marks a transient failure. Only errors carrying it are
// retried by [Backoff.Do].
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err or anything it wraps is a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Backoff retries an operation with a doubling delay.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// defaultBackoff is short: cache calls sit on the request path and a miss is
// always a safe fallback.
var defaultBackoff = Backoff{Attempts: 3, Delay: 100 * time.Millisecond}

// Do calls fn until it succeeds, fails with a non-retryable error, or runs
// out of attempts. It returns ctx.Err() if ctx ends while waiting.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	delay := b.Delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= b.Attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// RetryWithBackoff runs fn under the default policy of 3 attempts starting at
// 100ms.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return defaultBackoff.Do(ctx, fn)
}

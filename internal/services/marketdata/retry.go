package marketdata

import (
	"context"
	"time"
)

// RetryPolicy retries upstream calls a fixed number of times with a fixed delay.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy matches the upstream client defaults.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delay: time.Second}
}

// Do runs fn up to MaxAttempts times, sleeping Delay between attempts. The
// last error is returned when every attempt fails; context cancellation
// aborts the wait early.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delay):
		}
	}
	return err
}

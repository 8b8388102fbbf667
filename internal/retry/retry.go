// Package retry provides a small bounded-retry combinator for operations
// against eventually-consistent collaborators.
package retry

import (
	"context"
	"time"
)

// Policy bounds how often an operation is retried and how long to wait
// between attempts.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Do runs fn up to p.MaxAttempts times, sleeping p.Delay between attempts.
// It returns nil as soon as fn succeeds, the last error once attempts are
// exhausted, or the context error if ctx is cancelled while waiting.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 && p.Delay > 0 {
			timer := time.NewTimer(p.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

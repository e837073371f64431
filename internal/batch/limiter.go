package batch

import (
	"context"
	"time"
)

// Throttle is a token bucket of size one: each Wait consumes the token and
// the bucket refills after the configured interval. It exists to pace
// requests to the external service and is deliberately decoupled from the
// iteration logic so the batch loop stays oblivious to rate limiting.
type Throttle struct {
	interval time.Duration
	next     time.Time
}

// NewThrottle creates a throttle with the given refill interval. The
// bucket starts full, so the first Wait returns immediately.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Wait blocks until a token is available or the context ends.
func (t *Throttle) Wait(ctx context.Context) error {
	if t.interval > 0 {
		if delay := time.Until(t.next); delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	t.next = time.Now().Add(t.interval)
	return nil
}

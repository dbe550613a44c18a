// Package retry provides exponential backoff for short-lived probe
// re-attempts.  A single lost echo reply should not condemn a healthy
// gateway, so latency-bearing probes retry inside their timeout budget.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Backoff implements exponential backoff with optional jitter.
type Backoff struct {
	// InitialDelay is the delay before the second attempt (default 200ms).
	InitialDelay time.Duration
	// MaxDelay caps the backoff duration (default 1s).
	MaxDelay time.Duration
	// Multiplier increases the delay each attempt (default 2.0).
	Multiplier float64
	// MaxAttempts is the total number of tries including the first.
	// Default: 3.
	MaxAttempts int
	// Jitter adds ±25% randomisation to the delay.
	Jitter bool
}

// DefaultBackoff returns the probe re-attempt policy: three tries with
// short delays, small enough to fit inside a 5s probe timeout.
func DefaultBackoff() *Backoff {
	return &Backoff{
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
		MaxAttempts:  3,
		Jitter:       true,
	}
}

// Do executes fn repeatedly until it succeeds or the attempt budget /
// context is exhausted.  The attempt parameter passed to fn is 1-based.
// The last error is returned when all attempts fail.
func (b *Backoff) Do(ctx context.Context, fn func(attempt int) error) error {
	delay := b.InitialDelay
	if delay == 0 {
		delay = 200 * time.Millisecond
	}
	maxDelay := b.MaxDelay
	if maxDelay == 0 {
		maxDelay = time.Second
	}
	multiplier := b.Multiplier
	if multiplier == 0 {
		multiplier = 2.0
	}
	attempts := b.MaxAttempts
	if attempts == 0 {
		attempts = 3
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		wait := delay
		if b.Jitter {
			wait = jitter(wait)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		delay = time.Duration(math.Min(
			float64(delay)*multiplier, float64(maxDelay)))
	}
	return lastErr
}

// jitter randomises d by ±25%.
func jitter(d time.Duration) time.Duration {
	f := float64(d)
	return time.Duration(f*0.75 + rand.Float64()*f*0.5)
}

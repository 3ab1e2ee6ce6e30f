// Package retry re-runs failing operations with exponential backoff.
package retry

import (
	"context"
	"time"
)

type ShouldRetry func(err error, attempt int) bool

// Always retries every error until attempts run out.
func Always(error, int) bool { return true }

type Policy struct {
	Attempts    int
	Delay       time.Duration
	MaxDelay    time.Duration
	ShouldRetry ShouldRetry
}

// Do runs f until it succeeds, the policy gives up or ctx is done. The last
// error of f is returned.
func (p Policy) Do(ctx context.Context, f func(ctx context.Context) error) error {
	shouldRetry := p.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = Always
	}

	delay := p.Delay
	attempt := 0

	for {
		err := f(ctx)
		if err == nil {
			return nil
		}

		attempt++
		if attempt >= p.Attempts || !shouldRetry(err, attempt) {
			return err
		}

		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay):
		}

		delay *= 2
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
}

// Package retry wraps a single provider call with bounded exponential
// backoff. Exhaustion is reported as the last error; the caller decides
// whether to degrade or abort.
package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// Config controls the backoff schedule.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the wait before the first retry; it doubles each attempt.
	BaseDelay time.Duration
	// MaxDelay caps a single wait. Zero means no cap.
	MaxDelay time.Duration
	// JitterFactor adds up to this fraction of random extra delay to each
	// wait, to avoid thundering-herd amplification under concurrent callers.
	JitterFactor float64
	// Retryable decides whether an error is worth another attempt.
	// A nil predicate retries every error.
	Retryable func(error) bool
}

// DefaultConfig matches the engine's contract: three attempts,
// 2s/4s waits between them, 20% jitter.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		BaseDelay:    2 * time.Second,
		MaxDelay:     30 * time.Second,
		JitterFactor: 0.2,
	}
}

// Do runs fn until it succeeds, exhausts cfg.MaxAttempts, returns a
// non-retryable error, or ctx is cancelled. The returned error is the
// one from the last attempt.
func Do(ctx context.Context, cfg Config, fn func(ctx context.Context) error) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	delay := cfg.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if cfg.Retryable != nil && !cfg.Retryable(lastErr) {
			return lastErr
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		wait := delay
		if cfg.MaxDelay > 0 && wait > cfg.MaxDelay {
			wait = cfg.MaxDelay
		}
		if cfg.JitterFactor > 0 {
			wait += time.Duration(rand.Float64() * cfg.JitterFactor * float64(wait))
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
	}

	return lastErr
}

// Package retrylimit retries an operation with exponential backoff, paced by
// an optional token-bucket limiter.
//
// Example usage:
//
//	err := retrylimit.Do(ctx, retrylimit.DefaultConfig(), func() error {
//	    return session.Open()
//	})
package retrylimit

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/time/rate"
)

// FatalError stops retries immediately.
type FatalError struct {
	Err error
}

func (f *FatalError) Error() string { return f.Err.Error() }
func (f *FatalError) Unwrap() error { return f.Err }

// Fatal marks err as not worth retrying.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// Config configures retry behavior.
type Config struct {
	MaxAttempts  int           // Maximum number of attempts, at least 1
	InitialDelay time.Duration // Delay after the first failure
	MaxDelay     time.Duration // Upper bound for any delay
	Multiplier   float64       // Delay growth per attempt
	Jitter       bool          // Add up to 25% random delay
	// Limiter, when set, must grant a token before every attempt.
	Limiter *rate.Limiter
	OnRetry func(attempt int, err error, wait time.Duration)
}

// DefaultConfig returns five attempts starting at one second, doubling up to
// thirty seconds.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// Do runs fn until it succeeds, returns a FatalError, ctx is done or the
// attempts are exhausted. The last error is wrapped in the returned error.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}

	delay := cfg.InitialDelay
	var err error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if cfg.Limiter != nil {
			if werr := cfg.Limiter.Wait(ctx); werr != nil {
				return werr
			}
		} else if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		err = fn()
		if err == nil {
			return nil
		}

		var fatal *FatalError
		if errors.As(err, &fatal) {
			return fatal.Err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		wait := delay
		if cfg.Jitter {
			wait = addJitter(wait)
		}
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, wait)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("max attempts (%d) exceeded: %w", cfg.MaxAttempts, err)
}

// addJitter adds random jitter (0-25% of delay).
func addJitter(delay time.Duration) time.Duration {
	if delay < 4 {
		return delay
	}
	return delay + time.Duration(rand.Int63n(int64(delay/4)))
}

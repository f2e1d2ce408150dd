package retry

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
)

// Config controls exponential backoff between attempts.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
	// Retryable decides whether an error is worth another attempt. Defaults to IsTransient.
	Retryable func(error) bool
	// OnRetry is called before sleeping, with the attempt that just failed.
	OnRetry func(attempt int, delay time.Duration, err error)
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
		Multiplier:  2.0,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = d.BaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = d.MaxDelay
	}
	if c.Multiplier < 1 {
		c.Multiplier = d.Multiplier
	}
	if c.Retryable == nil {
		c.Retryable = IsTransient
	}
	return c
}

// Delay returns the wait after the given failed attempt (1-based).
func (c Config) Delay(attempt int) time.Duration {
	c = c.withDefaults()
	delay := float64(c.BaseDelay) * math.Pow(c.Multiplier, float64(attempt-1))
	if delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}
	return time.Duration(delay)
}

// Do runs fn until it succeeds, returns a non-retryable error, runs out of
// attempts, or ctx is done.
func Do(ctx context.Context, cfg Config, fn func(context.Context) error) error {
	cfg = cfg.withDefaults()

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !cfg.Retryable(err) {
			return err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		delay := cfg.Delay(attempt)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, delay, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return &MaxRetriesExceededError{LastError: lastErr, MaxAttempts: cfg.MaxAttempts}
}

// IsTransient matches connection-level failures seen while a database is starting.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"no such host",
		"the database system is starting up",
		"temporary failure",
	} {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}

type MaxRetriesExceededError struct {
	LastError   error
	MaxAttempts int
}

func (e *MaxRetriesExceededError) Error() string {
	return "max retries exceeded: " + e.LastError.Error()
}

func (e *MaxRetriesExceededError) Unwrap() error {
	return e.LastError
}

func IsMaxRetriesExceeded(err error) bool {
	var maxRetriesErr *MaxRetriesExceededError
	return errors.As(err, &maxRetriesErr)
}

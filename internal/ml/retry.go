package ml

import (
	"context"
	"time"
)

// SleepFunc waits for the given delay or until the context is cancelled.
// Injectable so tests run without real backoff delays.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryPolicy wraps a transport call with bounded retries and exponential
// backoff. The base delay doubles after each failed attempt.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Sleep       SleepFunc
}

// DefaultRetryPolicy matches the prediction endpoint contract: up to 3
// attempts, backoff starting at 1s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Sleep:       defaultSleep,
	}
}

// Do invokes fn until it succeeds or attempts are exhausted. It returns the
// number of attempts made and the last error. Context cancellation during
// backoff aborts immediately.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) (int, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = defaultSleep
	}

	var lastErr error
	delay := p.BaseDelay
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return attempt, nil
		}
		if attempt == attempts {
			break
		}
		if err := sleep(ctx, delay); err != nil {
			return attempt, err
		}
		delay *= 2
	}
	return attempts, lastErr
}

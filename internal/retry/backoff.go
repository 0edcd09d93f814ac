package retry

import (
	"context"
	"time"
)

// Backoff returns base * 2^attempt, capped at ceiling when ceiling > 0.
func Backoff(attempt int, base, ceiling time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 30 {
		attempt = 30
	}
	d := base * (1 << attempt)
	if ceiling > 0 && (d > ceiling || d <= 0) {
		return ceiling
	}
	return d
}

// Do calls fn up to attempts times, sleeping with Backoff between failures.
// It returns the last error, or ctx.Err() if ctx ends while waiting.
func Do(ctx context.Context, attempts int, base, ceiling time.Duration, fn func(context.Context) error) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		t := time.NewTimer(Backoff(attempt, base, ceiling))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return err
}

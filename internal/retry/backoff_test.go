package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBackoff(t *testing.T) {
	base := 100 * time.Millisecond

	tests := []struct {
		attempt  int
		max      time.Duration
		expected time.Duration
	}{
		{0, 0, 100 * time.Millisecond},
		{1, 0, 200 * time.Millisecond},
		{3, 0, 800 * time.Millisecond},
		{4, time.Second, time.Second},
		{-2, 0, 100 * time.Millisecond},
		{200, time.Minute, time.Minute},
	}

	for _, tt := range tests {
		result := Backoff(tt.attempt, base, tt.max)
		if result != tt.expected {
			t.Errorf("attempt %d max %v: got %v, want %v", tt.attempt, tt.max, result, tt.expected)
		}
	}
}

func TestDo(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		attempts  int
		failFirst int
		wantCalls int
		wantErr   error
	}{
		{name: "first try", attempts: 3, failFirst: 0, wantCalls: 1},
		{name: "succeeds on retry", attempts: 3, failFirst: 2, wantCalls: 3},
		{name: "gives up", attempts: 2, failFirst: 5, wantCalls: 2, wantErr: errBoom},
		{name: "zero attempts still calls once", attempts: 0, failFirst: 5, wantCalls: 1, wantErr: errBoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Do(context.Background(), tt.attempts, time.Millisecond, 0, func(context.Context) error {
				calls++
				if calls <= tt.failFirst {
					return errBoom
				}
				return nil
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got err %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("got %d calls, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestDoStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, 5, time.Hour, 0, func(context.Context) error { return errors.New("boom") })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

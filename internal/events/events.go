// Package events broadcasts completed asks to interested listeners.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lookup-agents/internal/retry"
)

// SubjectAskCompleted carries one Event per answered ask.
const SubjectAskCompleted = "asks.completed"

// Event summarizes one answered ask.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Mode      string    `json:"mode"`
	Sources   []string  `json:"sources"`
	Failed    int       `json:"failed"`
	Summary   []string  `json:"summary"`
	Cached    bool      `json:"cached"`
	UserID    string    `json:"user_id,omitempty"`
	TS        string    `json:"ts"`
	ElapsedMS int64     `json:"elapsed_ms"`
}

type Handler func(context.Context, Event) error

// Publisher emits events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Subscriber consumes events until ctx is done.
type Subscriber interface {
	Subscribe(ctx context.Context, handler Handler) error
}

// PublishWithRetry attempts to publish with retries and exponential backoff.
func PublishWithRetry(ctx context.Context, p Publisher, ev Event, attempts int, base time.Duration) error {
	return retry.Do(ctx, attempts, base, 2*time.Second, func(ctx context.Context) error {
		return p.Publish(ctx, ev)
	})
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

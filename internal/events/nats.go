package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// NATS publishes and consumes events over a core NATS connection.
type NATS struct {
	log   *slog.Logger
	nc    *nats.Conn
	group string
}

// NewNATS constructs a thin NATS-based event bus. Subscribers sharing a
// group split the stream between them.
func NewNATS(log *slog.Logger, nc *nats.Conn, group string) *NATS {
	return &NATS{log: log, nc: nc, group: group}
}

func (b *NATS) Publish(_ context.Context, ev Event) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.Question == "" {
		return errors.New("event question required")
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return b.nc.Publish(SubjectAskCompleted, body)
}

func (b *NATS) Subscribe(ctx context.Context, handler Handler) error {
	cb := func(msg *nats.Msg) {
		b.handleMessage(ctx, msg, handler)
	}
	var (
		sub *nats.Subscription
		err error
	)
	if b.group != "" {
		sub, err = b.nc.QueueSubscribe(SubjectAskCompleted, b.group, cb)
	} else {
		sub, err = b.nc.Subscribe(SubjectAskCompleted, cb)
	}
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", SubjectAskCompleted, err)
	}
	<-ctx.Done()
	return sub.Unsubscribe()
}

func (b *NATS) handleMessage(ctx context.Context, msg *nats.Msg, handler Handler) {
	var ev Event
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		b.log.Error("failed to decode event", "err", err)
		return
	}
	if err := handler(ctx, ev); err != nil {
		b.log.Error("event handler failed", "id", ev.ID, "err", err)
	}
}

// Close drains the connection.
func (b *NATS) Close() error {
	return b.nc.Drain()
}

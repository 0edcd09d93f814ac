package events

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookup-agents/internal/logger"
)

// Runs against a live server when NATS_TEST_URL is set.
func TestNATS_PublishSubscribe(t *testing.T) {
	url := os.Getenv("NATS_TEST_URL")
	if url == "" {
		t.Skip("NATS_TEST_URL not set")
	}
	nc, err := nats.Connect(url)
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	bus := NewNATS(logger.Discard(), nc, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Event, 1)
	done := make(chan error, 1)
	go func() {
		done <- bus.Subscribe(ctx, func(_ context.Context, ev Event) error {
			got <- ev
			return nil
		})
	}()
	// Give the subscription time to register.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, bus.Publish(ctx, Event{Question: "capital of France", Mode: "poll", Summary: []string{"Paris."}}))
	require.NoError(t, nc.Flush())

	select {
	case ev := <-got:
		assert.Equal(t, "capital of France", ev.Question)
		assert.NotEmpty(t, ev.ID)
		assert.Equal(t, []string{"Paris."}, ev.Summary)
	case <-time.After(2 * time.Second):
		t.Fatal("event not received")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestNATS_PublishRequiresQuestion(t *testing.T) {
	bus := NewNATS(logger.Discard(), nil, "")
	assert.Error(t, bus.Publish(context.Background(), Event{}))
}

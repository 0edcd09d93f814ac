package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookup-agents/internal/events"
	"lookup-agents/internal/logger"
)

func TestLogEvent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info")
	tl := &tally{}
	handle := logEvent(log, tl)

	id := uuid.New()
	require.NoError(t, handle(context.Background(), events.Event{ID: id, Question: "capital of France", Mode: "poll", Failed: 1, Summary: []string{"Paris."}}))
	require.NoError(t, handle(context.Background(), events.Event{Question: "q", Mode: "chain", Cached: true}))

	var line map[string]any
	require.NoError(t, json.NewDecoder(&buf).Decode(&line))
	assert.Equal(t, "ask completed", line["msg"])
	assert.Equal(t, id.String(), line["id"])
	assert.Equal(t, "capital of France", line["question"])
	assert.Equal(t, float64(1), line["summary"])

	snap := tl.snapshot()
	assert.Equal(t, 2, snap["asks"])
	assert.Equal(t, 1, snap["cached"])
	assert.Equal(t, 1, snap["failed_lookups"])
	assert.Equal(t, map[string]int{"poll": 1, "chain": 1}, snap["modes"])
}

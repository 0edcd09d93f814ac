package provider

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lookup-agents/internal/logger"
	"lookup-agents/internal/metrics"
)

func TestInstrumented_Query(t *testing.T) {
	tests := []struct {
		name       string
		result     SourceResult
		wantStatus string
	}{
		{name: "ok", result: SourceResult{Source: "instrumented_ok", Text: "Paris."}, wantStatus: "ok"},
		{name: "empty", result: SourceResult{Source: "instrumented_empty"}, wantStatus: "empty"},
		{name: "error", result: SourceResult{Source: "instrumented_err", Text: "(error) boom"}, wantStatus: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mp := new(MockProvider)
			mp.On("Name").Return(tt.result.Source)
			mp.On("Query", mock.Anything, "q").Return(tt.result).Once()

			before := testutil.ToFloat64(metrics.ProviderRequestsTotal.WithLabelValues(tt.result.Source, tt.wantStatus))

			p := Instrument([]Provider{mp}, logger.Discard())[0]
			got := p.Query(context.Background(), "q")

			assert.Equal(t, tt.result, got)
			assert.Equal(t, tt.result.Source, p.Name())
			after := testutil.ToFloat64(metrics.ProviderRequestsTotal.WithLabelValues(tt.result.Source, tt.wantStatus))
			assert.Equal(t, 1.0, after-before)
			mp.AssertExpectations(t)
		})
	}
}

func TestSourceResult_Usable(t *testing.T) {
	assert.True(t, SourceResult{Text: "Paris."}.Usable())
	assert.False(t, SourceResult{Text: "   "}.Usable())
	assert.False(t, SourceResult{Text: "(error) timeout"}.Usable())
	assert.True(t, SourceResult{Text: "(error) timeout"}.Failed())
}

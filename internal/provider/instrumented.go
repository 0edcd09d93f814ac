package provider

import (
	"context"
	"log/slog"
	"time"

	"lookup-agents/internal/metrics"
)

// Instrumented decorates a Provider with Prometheus metrics and debug logging.
type Instrumented struct {
	next Provider
	log  *slog.Logger
}

func NewInstrumented(next Provider, log *slog.Logger) *Instrumented {
	return &Instrumented{next: next, log: log}
}

// Instrument wraps every provider in ps.
func Instrument(ps []Provider, log *slog.Logger) []Provider {
	out := make([]Provider, len(ps))
	for i, p := range ps {
		out[i] = NewInstrumented(p, log)
	}
	return out
}

func (p *Instrumented) Name() string { return p.next.Name() }

func (p *Instrumented) Query(ctx context.Context, text string) SourceResult {
	start := time.Now()
	res := p.next.Query(ctx, text)
	elapsed := time.Since(start)

	status := "ok"
	switch {
	case res.Failed():
		status = "error"
		p.log.Warn("provider lookup failed", "source", res.Source, "url", res.URL, "err", res.Text)
	case res.Text == "":
		status = "empty"
	}

	metrics.ProviderRequestsTotal.WithLabelValues(p.Name(), status).Inc()
	metrics.ProviderRequestDuration.WithLabelValues(p.Name()).Observe(elapsed.Seconds())
	p.log.Debug("provider lookup", "source", p.Name(), "status", status, "duration_ms", elapsed.Milliseconds())
	return res
}

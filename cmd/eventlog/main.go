package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"lookup-agents/internal/app"
	"lookup-agents/internal/config"
	"lookup-agents/internal/events"
	"lookup-agents/internal/httputil"
	"lookup-agents/internal/logger"
)

const consumerGroup = "eventlog"

func main() {
	if err := app.LoadEnv(); err != nil {
		slog.Default().Error("failed to load env", "err", err)
		os.Exit(1)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	bus, err := app.ConnectNATS(cfg, log, consumerGroup)
	if err != nil {
		log.Error("failed to connect to NATS", "err", err)
		os.Exit(1)
	}
	defer bus.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tally := &tally{}
	r := httputil.NewRouter(log, cfg.RequestTimeout)
	r.Get("/healthz", httputil.HealthHandler(log))
	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, tally.snapshot())
	})
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bus.Subscribe(gctx, logEvent(log, tally))
	})
	g.Go(func() error {
		return httputil.Serve(gctx, log, srv)
	})
	if err := g.Wait(); err != nil {
		log.Error("eventlog stopped", "err", err)
	}
}

// tally counts observed asks.
type tally struct {
	mu     sync.Mutex
	asks   int
	cached int
	failed int
	modes  map[string]int
}

func (t *tally) add(ev events.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.modes == nil {
		t.modes = make(map[string]int)
	}
	t.asks++
	t.failed += ev.Failed
	t.modes[ev.Mode]++
	if ev.Cached {
		t.cached++
	}
}

func (t *tally) snapshot() map[string]any {
	t.mu.Lock()
	defer t.mu.Unlock()
	modes := make(map[string]int, len(t.modes))
	for k, v := range t.modes {
		modes[k] = v
	}
	return map[string]any{
		"asks":           t.asks,
		"cached":         t.cached,
		"failed_lookups": t.failed,
		"modes":          modes,
	}
}

func logEvent(log *slog.Logger, t *tally) events.Handler {
	return func(_ context.Context, ev events.Event) error {
		t.add(ev)
		log.Info("ask completed",
			"id", ev.ID,
			"question", ev.Question,
			"mode", ev.Mode,
			"sources", ev.Sources,
			"failed", ev.Failed,
			"summary", len(ev.Summary),
			"cached", ev.Cached,
			"user_id", ev.UserID,
			"elapsed_ms", ev.ElapsedMS,
			"ts", ev.TS,
		)
		return nil
	}
}

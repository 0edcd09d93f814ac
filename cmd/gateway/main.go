package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lookup-agents/internal/app"
	"lookup-agents/internal/ask"
	"lookup-agents/internal/httputil"
	"lookup-agents/internal/metrics"
)

const maxBodyBytes = 64 << 10

type askRequest struct {
	Question string `json:"question"`
	Mode     string `json:"mode"`
	UserID   string `json:"user_id" validate:"omitempty,max=128,printascii"`
}

type balanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int    `json:"balance"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := httputil.Serve(ctx, deps.Log, srv); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func newRouter(deps app.Deps) http.Handler {
	r := httputil.NewRouter(deps.Log, deps.Config.RequestTimeout)
	r.Use(metrics.Middleware())

	r.Post("/api/ask", askHandler(deps))
	r.Get("/api/tokens/stats", statsHandler(deps))
	r.Get("/api/tokens/{user_id}", balanceHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func askHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		res, err := deps.Ask.Ask(r.Context(), ask.Input{
			Question: req.Question,
			Mode:     req.Mode,
			UserID:   req.UserID,
		})
		if errors.Is(err, ask.ErrInvalidInput) {
			httputil.Fail(deps.Log, w, "missing question", err, http.StatusBadRequest)
			return
		}
		if err != nil {
			httputil.Fail(deps.Log, w, "ask failed", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, res)
	}
}

func balanceHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "user_id")
		if err := httputil.Validator.Var(userID, "required,max=128,printascii"); err != nil {
			httputil.Fail(deps.Log, w, "invalid user id", err, http.StatusBadRequest)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, balanceResponse{
			UserID:  userID,
			Balance: deps.Ledger.Balance(userID),
		})
	}
}

func statsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, deps.Ledger.Stats())
	}
}

// Package ask answers one question end to end.
package ask

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"lookup-agents/internal/aggregate"
	"lookup-agents/internal/cache"
	"lookup-agents/internal/events"
	"lookup-agents/internal/ledger"
	"lookup-agents/internal/merge"
	"lookup-agents/internal/metrics"
	"lookup-agents/internal/provider"
)

// TimeFormat renders completion timestamps: UTC with microseconds and a Z suffix.
const TimeFormat = "2006-01-02T15:04:05.000000Z"

const (
	publishAttempts = 3
	publishBackoff  = 50 * time.Millisecond
)

var ErrInvalidInput = errors.New("missing question")

// Input is one ask request.
type Input struct {
	Question string
	Mode     string
	UserID   string
}

// Result is the composite answer returned to callers.
type Result struct {
	ID       uuid.UUID               `json:"id"`
	Question string                  `json:"question"`
	Mode     aggregate.Mode          `json:"mode"`
	Answers  []provider.SourceResult `json:"answers"`
	Summary  []string                `json:"summary"`
	TS       string                  `json:"ts"`
	Cached   bool                    `json:"cached,omitempty"`
	Balance  *int                    `json:"balance,omitempty"`
}

// Runner aggregates a question across providers.
type Runner interface {
	Run(ctx context.Context, mode aggregate.Mode, question string) []provider.SourceResult
}

// Options tunes the optional collaborators of a Service.
type Options struct {
	CacheTTL  time.Duration
	AskReward int
}

// Service answers questions. Cache, events and ledger are optional.
type Service struct {
	log    *slog.Logger
	runner Runner
	cache  cache.Cache
	events events.Publisher
	ledger *ledger.Ledger
	opts   Options
	now    func() time.Time
}

func NewService(log *slog.Logger, runner Runner, c cache.Cache, pub events.Publisher, l *ledger.Ledger, opts Options) *Service {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{
		log:    log,
		runner: runner,
		cache:  c,
		events: pub,
		ledger: l,
		opts:   opts,
		now:    time.Now,
	}
}

// Ask runs one question. The only error it returns is ErrInvalidInput.
func (s *Service) Ask(ctx context.Context, in Input) (Result, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return Result{}, ErrInvalidInput
	}
	mode := aggregate.ParseMode(in.Mode)
	start := s.now()
	log := s.log.With("mode", mode)

	res := Result{ID: uuid.New(), Question: question, Mode: mode}
	key := cache.Key(string(mode), question)

	if entry := s.lookup(ctx, log, key); entry != nil {
		res.Answers, res.Summary, res.Cached = entry.Answers, entry.Summary, true
	} else {
		res.Answers = s.runner.Run(ctx, mode, question)
		res.Summary = merge.Merge(res.Answers)
	}
	res.TS = s.now().UTC().Format(TimeFormat)
	if !res.Cached {
		s.store(ctx, log, key, res)
	}
	metrics.SummarySentences.Observe(float64(len(res.Summary)))
	metrics.AsksTotal.WithLabelValues(string(mode), cacheLabel(res.Cached)).Inc()

	if in.UserID != "" && s.ledger != nil {
		bal, err := s.ledger.Apply(in.UserID, ledger.AskChange(question, s.opts.AskReward))
		if err != nil {
			log.Warn("ledger update rejected", "user_id", in.UserID, "err", err)
		}
		res.Balance = &bal
	}

	s.publish(ctx, log, res, in.UserID, s.now().Sub(start))
	log.Info("ask answered",
		"id", res.ID,
		"answers", len(res.Answers),
		"summary", len(res.Summary),
		"cached", res.Cached,
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)
	return res, nil
}

func (s *Service) lookup(ctx context.Context, log *slog.Logger, key string) *cache.Entry {
	entry, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn("cache get failed", "err", err)
		return nil
	}
	return entry
}

// store caches res only when at least one provider produced usable text.
func (s *Service) store(ctx context.Context, log *slog.Logger, key string, res Result) {
	if s.opts.CacheTTL <= 0 || !anyUsable(res.Answers) {
		return
	}
	entry := &cache.Entry{Answers: res.Answers, Summary: res.Summary, TS: res.TS}
	if err := s.cache.Set(ctx, key, entry, s.opts.CacheTTL); err != nil {
		log.Warn("cache set failed", "err", err)
	}
}

func (s *Service) publish(ctx context.Context, log *slog.Logger, res Result, userID string, elapsed time.Duration) {
	ev := events.Event{
		ID:        res.ID,
		Question:  res.Question,
		Mode:      string(res.Mode),
		Sources:   make([]string, len(res.Answers)),
		Summary:   res.Summary,
		Cached:    res.Cached,
		UserID:    userID,
		TS:        res.TS,
		ElapsedMS: elapsed.Milliseconds(),
	}
	for i, a := range res.Answers {
		ev.Sources[i] = a.Source
		if a.Failed() {
			ev.Failed++
		}
	}
	if err := events.PublishWithRetry(ctx, s.events, ev, publishAttempts, publishBackoff); err != nil {
		log.Warn("event publish failed", "id", res.ID, "err", err)
	}
}

func anyUsable(results []provider.SourceResult) bool {
	for _, r := range results {
		if r.Usable() {
			return true
		}
	}
	return false
}

func cacheLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

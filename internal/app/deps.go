package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"lookup-agents/internal/aggregate"
	"lookup-agents/internal/ask"
	"lookup-agents/internal/cache"
	"lookup-agents/internal/config"
	"lookup-agents/internal/events"
	"lookup-agents/internal/ledger"
	"lookup-agents/internal/logger"
	"lookup-agents/internal/provider"
)

// Deps bundles common runtime dependencies for services.
type Deps struct {
	Config    config.Config
	Log       *slog.Logger
	Providers []provider.Provider
	Strategy  *aggregate.Strategy
	Cache     cache.Cache
	Events    events.Publisher
	Ledger    *ledger.Ledger
	Ask       *ask.Service
}

// Close releases external connections.
func (d Deps) Close() {
	if d.Cache != nil {
		if err := d.Cache.Close(); err != nil {
			d.Log.Warn("cache close failed", "err", err)
		}
	}
	if c, ok := d.Events.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			d.Log.Warn("events close failed", "err", err)
		}
	}
}

// LoadEnv loads .env when present; a missing file is not an error.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	if err := LoadEnv(); err != nil {
		return Deps{}, err
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	return BuildWith(cfg, log)
}

// BuildWith wires components from an already loaded config.
func BuildWith(cfg config.Config, log *slog.Logger) (Deps, error) {
	providers, err := buildProviders(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize providers: %w", err)
	}
	strategy := aggregate.New(providers, aggregate.Options{
		Pause:      cfg.PollPause,
		Concurrent: cfg.PollConcurrent,
	})

	c, err := buildCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	pub, err := buildEvents(cfg, log)
	if err != nil {
		_ = c.Close()
		return Deps{}, fmt.Errorf("failed to initialize events: %w", err)
	}
	l := ledger.New(cfg.InitialBalance)

	svc := ask.NewService(log, strategy, c, pub, l, ask.Options{
		CacheTTL:  time.Duration(cfg.CacheTTL) * time.Second,
		AskReward: cfg.AskReward,
	})

	log.Info("providers configured", "providers", strategy.Providers(), "concurrent", cfg.PollConcurrent)
	return Deps{
		Config:    cfg,
		Log:       log,
		Providers: providers,
		Strategy:  strategy,
		Cache:     c,
		Events:    pub,
		Ledger:    l,
		Ask:       svc,
	}, nil
}

func buildProviders(cfg config.Config, log *slog.Logger) ([]provider.Provider, error) {
	specs := provider.SpecsFromNames(cfg.Providers)
	if cfg.ProvidersFile != "" {
		fromFile, err := provider.LoadRegistryFile(cfg.ProvidersFile)
		if err != nil {
			return nil, err
		}
		log.Info("using provider registry file", "path", cfg.ProvidersFile)
		specs = fromFile
	}
	ps, err := provider.Build(specs, provider.Options{
		Client:    &http.Client{},
		Timeout:   cfg.ProviderTimeout,
		UserAgent: cfg.UserAgent,
	}, provider.LLMConfig{
		APIKey: cfg.OpenAIKey,
		Model:  cfg.LLMModel,
	})
	if err != nil {
		return nil, err
	}
	return provider.Instrument(ps, log), nil
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "", "none":
		return cache.NewNoOpCache(), nil
	case "redis":
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn("redis unavailable, caching disabled", "addr", cfg.RedisAddr, "err", err)
			return cache.NewNoOpCache(), nil
		}
		log.Info("using Redis cache", "addr", cfg.RedisAddr, "ttl_seconds", cfg.CacheTTL)
		return c, nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: none, redis)", cfg.CacheProvider)
	}
}

func buildEvents(cfg config.Config, log *slog.Logger) (events.Publisher, error) {
	switch cfg.EventsProvider {
	case "", "none":
		return events.Noop{}, nil
	case "nats":
		bus, err := ConnectNATS(cfg, log, "")
		if err != nil {
			return nil, err
		}
		log.Info("publishing ask events to NATS", "subject", events.SubjectAskCompleted)
		return bus, nil
	default:
		return nil, fmt.Errorf("invalid EVENTS_PROVIDER: %s (valid options: none, nats)", cfg.EventsProvider)
	}
}

// ConnectNATS dials NATS_URL and returns an event bus on it.
func ConnectNATS(cfg config.Config, log *slog.Logger, group string) (*events.NATS, error) {
	if cfg.NATSURL == "" {
		return nil, fmt.Errorf("NATS_URL is required when EVENTS_PROVIDER=nats")
	}
	nc, err := nats.Connect(cfg.NATSURL, nats.Name("lookup-agents"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return events.NewNATS(log, nc, group), nil
}

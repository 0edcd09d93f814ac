package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for the gateway and the event log.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// RequestTimeout bounds one inbound HTTP request, provider fan-out included.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	// Providers
	Providers       []string      `env:"PROVIDERS" envDefault:"ddg_ia,wikipedia,wikidata,ddg_web" envSeparator:","`
	ProvidersFile   string        `env:"PROVIDERS_FILE"` // optional YAML registry, overrides PROVIDERS
	UserAgent       string        `env:"USER_AGENT" envDefault:"lookup-agents/1.0 (+https://github.com/lookup-agents)"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`

	// Aggregation
	PollPause      time.Duration `env:"POLL_PAUSE" envDefault:"100ms"`
	PollConcurrent bool          `env:"POLL_CONCURRENT" envDefault:"false"`

	// Cache
	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"none"` // "none" or "redis"
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"300"` // seconds

	// Events
	EventsProvider string `env:"EVENTS_PROVIDER" envDefault:"none"` // "none" or "nats"
	NATSURL        string `env:"NATS_URL"`

	// LLM provider, only used when "openai" is listed in the registry
	OpenAIKey string `env:"OPENAI_API_KEY"`
	LLMModel  string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	// Token ledger
	InitialBalance int `env:"LEDGER_INITIAL_BALANCE" envDefault:"100"`
	AskReward      int `env:"ASK_REWARD" envDefault:"1"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookup-agents/internal/cache"
	"lookup-agents/internal/config"
	"lookup-agents/internal/events"
	"lookup-agents/internal/logger"
)

func baseConfig() config.Config {
	return config.Config{
		Providers:      []string{"ddg_ia", "wikipedia", "wikidata", "ddg_web"},
		CacheProvider:  "none",
		EventsProvider: "none",
		InitialBalance: 100,
		CacheTTL:       300,
	}
}

func TestBuildWith_Defaults(t *testing.T) {
	deps, err := BuildWith(baseConfig(), logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, []string{"ddg_ia", "wikipedia", "wikidata", "ddg_web"}, deps.Strategy.Providers())
	assert.IsType(t, &cache.NoOpCache{}, deps.Cache)
	assert.IsType(t, events.Noop{}, deps.Events)
	assert.Equal(t, 100, deps.Ledger.Balance("new-user"))
	assert.NotNil(t, deps.Ask)
	deps.Close()
}

func TestBuildWith_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "unknown provider", mutate: func(c *config.Config) { c.Providers = []string{"gopher"} }},
		{name: "openai without key", mutate: func(c *config.Config) { c.Providers = []string{"openai"} }},
		{name: "invalid cache provider", mutate: func(c *config.Config) { c.CacheProvider = "memcached" }},
		{name: "invalid events provider", mutate: func(c *config.Config) { c.EventsProvider = "kafka" }},
		{name: "nats without url", mutate: func(c *config.Config) { c.EventsProvider = "nats" }},
		{name: "missing registry file", mutate: func(c *config.Config) { c.ProvidersFile = "/nonexistent/providers.yaml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(&cfg)
			_, err := BuildWith(cfg, logger.Discard())
			assert.Error(t, err)
		})
	}
}

func TestBuildWith_RegistryFileOverridesNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("providers:\n  - kind: wikidata\n  - kind: wikipedia\n"), 0o600))

	cfg := baseConfig()
	cfg.ProvidersFile = path
	deps, err := BuildWith(cfg, logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, []string{"wikidata", "wikipedia"}, deps.Strategy.Providers())
}

func TestBuildWith_RedisFallsBackToNoOp(t *testing.T) {
	cfg := baseConfig()
	cfg.CacheProvider = "redis"
	cfg.RedisAddr = "127.0.0.1:1"

	deps, err := BuildWith(cfg, logger.Discard())
	require.NoError(t, err)

	assert.IsType(t, &cache.NoOpCache{}, deps.Cache)
}

package cache

import (
	"context"
	"time"
)

// NoOpCache is a cache implementation that does nothing.
// Used when caching is disabled or Redis is unavailable: every lookup misses.
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache instance
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always returns nil (cache miss)
func (c *NoOpCache) Get(ctx context.Context, key string) (*Entry, error) {
	return nil, nil
}

// Set does nothing and always succeeds
func (c *NoOpCache) Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

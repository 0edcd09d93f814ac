package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"lookup-agents/internal/provider"
)

// Cache stores aggregated answers for repeated questions.
type Cache interface {
	// Get returns the cached entry for key, or nil on a miss.
	Get(ctx context.Context, key string) (*Entry, error)

	// Set stores an entry with TTL.
	Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error

	// Close closes the cache connection
	Close() error
}

// Entry is a cached aggregation outcome.
type Entry struct {
	Answers []provider.SourceResult `json:"answers"`
	Summary []string                `json:"summary"`
	TS      string                  `json:"ts"`
}

// Key derives the cache key for a resolved mode and question. Questions that
// differ only by case or surrounding whitespace share a key.
func Key(mode, question string) string {
	h := sha256.Sum256([]byte(mode + "\x00" + strings.ToLower(strings.TrimSpace(question))))
	return hex.EncodeToString(h[:])
}

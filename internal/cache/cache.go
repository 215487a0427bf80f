// Package cache provides the TTL response cache shared by the upstream clients.
// Values are stored JSON-encoded in a pluggable Store: in-memory for a single
// process, SQLite to survive restarts, or Redis to share across instances.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ryanm101/gameroom/internal/logging"
	"github.com/ryanm101/gameroom/internal/metrics"
)

// DefaultTTL is how long upstream responses stay fresh.
const DefaultTTL = 5 * time.Minute

// Store is a byte-level key/value store with per-entry expiry.
// Implementations must be safe for concurrent use and must never
// return an expired entry.
type Store interface {
	// Get returns the value and whether a live entry was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl, overwriting any previous entry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Close releases any resources held by the store.
	Close() error
}

// Cache is the process-wide response cache.
type Cache struct {
	store  Store
	logger *slog.Logger
}

// New creates a response cache backed by store.
func New(store Store) *Cache {
	return &Cache{store: store, logger: logging.For("cache")}
}

// Get decodes the live entry under key into dst and reports whether it did.
// Backend or decode errors are logged and treated as a miss.
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("cache entry undecodable", "key", key, "error", err)
		return false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return true
}

// Set stores value under key for ttl. Failures are logged, not returned.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache entry unencodable", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// Close closes the underlying store.
func (c *Cache) Close() error {
	return c.store.Close()
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"subpipe/internal/config"
	"subpipe/internal/core/domain"
	"subpipe/internal/core/port"
)

type metadataCache struct {
	kv         port.KeyValueStore
	defaultTTL time.Duration
	logger     *slog.Logger
}

// New creates the read-through metadata cache on top of the key-value backend
func New(kv port.KeyValueStore, cfg config.CacheConfig, logger *slog.Logger) port.MetadataCache {
	return &metadataCache{
		kv:         kv,
		defaultTTL: cfg.TTL,
		logger:     logger,
	}
}

// GetJSON reads a key and decodes it into out. A miss is domain.ErrKeyNotFound;
// an unreachable backend is domain.ErrCacheUnavailable, which callers treat as
// "cannot know right now", not as a miss.
func (c *metadataCache) GetJSON(ctx context.Context, key string, out any) error {
	value, err := c.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(value, out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", domain.ErrCacheOperationFailed, key, err)
	}
	return nil
}

// SetJSON encodes value and stores it under key; ttl <= 0 uses the default
func (c *metadataCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", domain.ErrCacheOperationFailed, key, err)
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	return c.kv.Set(ctx, key, encoded, ttl)
}

// Delete invalidates keys
func (c *metadataCache) Delete(ctx context.Context, keys ...string) error {
	return c.kv.Delete(ctx, keys...)
}

// DeletePattern invalidates every key matching the glob pattern
func (c *metadataCache) DeletePattern(ctx context.Context, pattern string) error {
	return c.kv.DeletePattern(ctx, pattern)
}

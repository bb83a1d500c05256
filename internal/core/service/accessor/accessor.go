package accessor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"subpipe/internal/config"
	"subpipe/internal/core/domain"
	"subpipe/internal/core/port"
)

// Accessor coordinates cache-miss handling so that under concurrent requests
// for the same cold key only the lock holder pays the reconstruction cost.
// Everyone else gets a cache hit after a short wait or a bounded failure.
type Accessor struct {
	cache        port.MetadataCache
	lock         port.Locker
	pollAttempts int
	pollDelay    time.Duration
	logger       *slog.Logger
}

// New creates an Accessor
func New(cache port.MetadataCache, lock port.Locker, cfg config.LockConfig, logger *slog.Logger) *Accessor {
	return &Accessor{
		cache:        cache,
		lock:         lock,
		pollAttempts: cfg.PollAttempts,
		pollDelay:    cfg.PollDelay,
		logger:       logger,
	}
}

// Fetch returns the value under key, reconstructing it from the source of
// truth on a miss with stampede protection. A not-found from fetch propagates
// as-is and is never cached. When the backend is unreachable the call degrades
// to a direct source read: the lock lives in the same backend, so protection
// is impossible in that state by construction.
func Fetch[T any](ctx context.Context, a *Accessor, key string, mode domain.CacheMode, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	if mode != domain.CacheModeForceRefresh {
		var cached T
		err := a.cache.GetJSON(ctx, key, &cached)
		switch {
		case err == nil:
			return cached, nil
		case errors.Is(err, domain.ErrCacheUnavailable):
			a.logger.Warn("cache unavailable, reading source directly", "key", key, "error", err)
			return fetch(ctx)
		case !errors.Is(err, domain.ErrKeyNotFound):
			a.logger.Warn("cache read failed", "key", key, "error", err)
		}
	}

	acquired, err := a.lock.Acquire(ctx, key)
	if err != nil {
		// a broken lock must not break reads; the source stays authoritative
		a.logger.Warn("lock acquire failed, reading source directly", "key", key, "error", err)
		return fetch(ctx)
	}

	if !acquired {
		return waitForFill[T](ctx, a, key)
	}
	defer a.lock.Release(ctx, key)

	// another process may have just finished reconstructing
	if mode != domain.CacheModeForceRefresh {
		var cached T
		if err := a.cache.GetJSON(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	value, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	// a caching failure does not fail the read
	if err := a.cache.SetJSON(ctx, key, value, ttl); err != nil {
		a.logger.Warn("cache write failed", "key", key, "error", err)
	}

	return value, nil
}

// waitForFill polls the cache while another caller reconstructs the value.
// An exhausted budget surfaces as domain.ErrLockContention rather than
// silently hammering the source of truth.
func waitForFill[T any](ctx context.Context, a *Accessor, key string) (T, error) {
	var zero T

	for attempt := 0; attempt < a.pollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(a.pollDelay):
		}

		var cached T
		if err := a.cache.GetJSON(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	return zero, fmt.Errorf("%w: %s", domain.ErrLockContention, key)
}

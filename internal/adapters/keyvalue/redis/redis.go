package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"subpipe/internal/config"
	"subpipe/internal/core/domain"

	"github.com/redis/go-redis/v9"
)

// Adapter is an adapter for the redis key-value backend. It implements
// port.KeyValueStore and port.QueueStore.
type Adapter struct {
	client    *redis.Client
	opTimeout time.Duration
	logger    *slog.Logger
}

// NewAdapter returns Adapter, verifying a successful connection to redis
func NewAdapter(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*Adapter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Adapter{
		client:    client,
		opTimeout: cfg.OpTimeout,
		logger:    logger,
	}, nil
}

// classify maps a redis error into the domain failure taxonomy. Callers must
// be able to distinguish "definitely not cached" from "cannot know right now".
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.Nil):
		return domain.ErrKeyNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	case errors.Is(err, redis.ErrClosed):
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrCacheOperationFailed, err)
}

func (a *Adapter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.opTimeout)
}

// Get retrieves the raw value of a key
func (a *Adapter) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	value, err := a.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, classify(err)
	}
	return value, nil
}

// Set stores a value with a TTL; ttl <= 0 stores without expiry
func (a *Adapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return classify(err)
	}
	return nil
}

// Delete removes keys; missing keys are not an error
func (a *Adapter) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Del(ctx, keys...).Err(); err != nil {
		return classify(err)
	}
	return nil
}

// Scan returns all keys matching the glob pattern
func (a *Adapter) Scan(ctx context.Context, pattern string) ([]string, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	var keys []string
	var cursor uint64
	for {
		page, next, err := a.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, classify(err)
		}
		keys = append(keys, page...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

// DeletePattern removes every key matching the glob pattern
func (a *Adapter) DeletePattern(ctx context.Context, pattern string) error {
	keys, err := a.Scan(ctx, pattern)
	if err != nil {
		return err
	}
	return a.Delete(ctx, keys...)
}

// SetIfNotExists performs a conditional set with expiry, atomic at the store
// level. It is the primitive behind the distributed lock.
func (a *Adapter) SetIfNotExists(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	ok, err := a.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, classify(err)
	}
	return ok, nil
}

// TTL returns the remaining time to live of a key
func (a *Adapter) TTL(ctx context.Context, key string) (time.Duration, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	ttl, err := a.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, classify(err)
	}
	return ttl, nil
}

// Update applies fn to the current value of key under WATCH/MULTI/EXEC.
// The commit is rejected with domain.ErrTransactionConflict when the key was
// modified since the watch began. Errors returned by fn pass through
// unchanged. The key's TTL is preserved.
func (a *Adapter) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	err := a.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return classify(err)
		}
		if errors.Is(err, redis.Nil) {
			current = nil
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, redis.KeepTTL)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.TxFailedErr):
		return fmt.Errorf("%w: %s", domain.ErrTransactionConflict, key)
	default:
		return err
	}
}

// Enqueue adds a FIFO element to a queue
func (a *Adapter) Enqueue(ctx context.Context, queue string, value []byte) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.LPush(ctx, queue, value).Err(); err != nil {
		return classify(err)
	}
	return nil
}

// Dequeue removes a FIFO element, blocking up to wait
func (a *Adapter) Dequeue(ctx context.Context, queue string, wait time.Duration) ([]byte, error) {
	out, err := a.client.BRPop(ctx, wait, queue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrQueueEmpty
		}
		return nil, classify(err)
	}
	// BRPop returns [queue, value]
	if len(out) < 2 {
		return nil, fmt.Errorf("%w: unexpected brpop reply", domain.ErrCacheOperationFailed)
	}
	return []byte(out[1]), nil
}

// Ping verifies the backend is reachable
func (a *Adapter) Ping(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Ping(ctx).Err(); err != nil {
		return classify(err)
	}
	return nil
}

// Close closes the redis client
func (a *Adapter) Close() error {
	return a.client.Close()
}

package port

import (
	"context"
	"time"
)

// KeyValueStore is an interface over the remote key-value backend. It is the
// substrate for the metadata cache, the distributed lock and the dedup store.
// Implementations classify failures as domain.ErrKeyNotFound,
// domain.ErrCacheUnavailable, domain.ErrTimeout or domain.ErrCacheOperationFailed.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	SetIfNotExists(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	// Update applies fn to the current value of key under an optimistic
	// transaction. fn receives nil when the key is absent. The commit is
	// rejected with domain.ErrTransactionConflict if the key was modified
	// since it was read. The key's TTL is preserved.
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
	Ping(ctx context.Context) error
	Close() error
}

// QueueStore is an interface over the backend's FIFO list operations, used by
// the job pipeline
type QueueStore interface {
	Enqueue(ctx context.Context, queue string, value []byte) error
	// Dequeue blocks up to wait for an element and returns
	// domain.ErrQueueEmpty when none arrived
	Dequeue(ctx context.Context, queue string, wait time.Duration) ([]byte, error)
}

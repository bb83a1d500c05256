package port

import (
	"context"
	"time"
)

// MetadataCache is an interface to define the read-through metadata cache
type MetadataCache interface {
	GetJSON(ctx context.Context, key string, out any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
}

// Locker is an interface to define the lease-based distributed lock
type Locker interface {
	// Acquire returns false when the lock is already held and unexpired
	Acquire(ctx context.Context, key string) (bool, error)
	// Release is best-effort; the lease TTL is the real safety net
	Release(ctx context.Context, key string)
}

package lock

import (
	"context"
	"log/slog"
	"time"

	"subpipe/internal/config"
	"subpipe/internal/core/port"
)

const lockSuffix = ":lock"

type locker struct {
	kv     port.KeyValueStore
	lease  time.Duration
	logger *slog.Logger
}

// New creates a lease-based distributed lock on the key-value backend. The
// lease must exceed the expected reconstruction time; when it does not, a
// second holder may appear and the worst outcome is a redundant
// reconstruction, not corruption.
func New(kv port.KeyValueStore, cfg config.LockConfig, logger *slog.Logger) port.Locker {
	return &locker{
		kv:     kv,
		lease:  cfg.Lease,
		logger: logger,
	}
}

// Acquire takes the lock for resourceKey via a conditional set with expiry.
// Returns false when the lock is already held and unexpired.
func (l *locker) Acquire(ctx context.Context, resourceKey string) (bool, error) {
	return l.kv.SetIfNotExists(ctx, resourceKey+lockSuffix, []byte("1"), l.lease)
}

// Release drops the lock unconditionally. There is no owner token, so a holder
// that outlived its lease can release a lock taken by someone else; the short
// lease bounds the blast radius. Failures are logged only, the lease TTL is
// the real safety net.
func (l *locker) Release(ctx context.Context, resourceKey string) {
	if err := l.kv.Delete(ctx, resourceKey+lockSuffix); err != nil {
		l.logger.Warn("failed to release lock", "key", resourceKey, "error", err)
	}
}

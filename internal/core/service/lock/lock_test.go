package lock_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	kvredis "subpipe/internal/adapters/keyvalue/redis"
	"subpipe/internal/config"
	"subpipe/internal/core/port"
	"subpipe/internal/core/service/lock"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T, lease time.Duration) (port.Locker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	kv, err := kvredis.NewAdapter(context.Background(), config.RedisConfig{
		Addr:      mr.Addr(),
		OpTimeout: 3 * time.Second,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	return lock.New(kv, config.LockConfig{Lease: lease}, logger), mr
}

func TestLocker_AcquireHeldKeyFails(t *testing.T) {
	// Arrange
	ctx := context.Background()
	locker, _ := newTestLocker(t, 5*time.Second)

	// Act
	first, err := locker.Acquire(ctx, "media:abc")
	require.NoError(t, err)
	second, err := locker.Acquire(ctx, "media:abc")
	require.NoError(t, err)

	// Assert
	assert.True(t, first)
	assert.False(t, second)
}

func TestLocker_AcquireSucceedsAfterLeaseExpiry(t *testing.T) {
	// Arrange
	ctx := context.Background()
	locker, mr := newTestLocker(t, 5*time.Second)

	first, err := locker.Acquire(ctx, "media:abc")
	require.NoError(t, err)
	require.True(t, first)

	// Act
	mr.FastForward(6 * time.Second)
	second, err := locker.Acquire(ctx, "media:abc")

	// Assert
	require.NoError(t, err)
	assert.True(t, second)
}

func TestLocker_ReleaseAllowsReacquire(t *testing.T) {
	// Arrange
	ctx := context.Background()
	locker, _ := newTestLocker(t, 5*time.Second)

	first, err := locker.Acquire(ctx, "media:abc")
	require.NoError(t, err)
	require.True(t, first)

	// Act
	locker.Release(ctx, "media:abc")
	second, err := locker.Acquire(ctx, "media:abc")

	// Assert
	require.NoError(t, err)
	assert.True(t, second)
}

func TestLocker_IndependentKeys(t *testing.T) {
	// Arrange
	ctx := context.Background()
	locker, _ := newTestLocker(t, 5*time.Second)

	// Act
	first, err := locker.Acquire(ctx, "media:a")
	require.NoError(t, err)
	second, err := locker.Acquire(ctx, "media:b")
	require.NoError(t, err)

	// Assert
	assert.True(t, first)
	assert.True(t, second)
}

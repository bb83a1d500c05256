package accessor_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	kvredis "subpipe/internal/adapters/keyvalue/redis"
	"subpipe/internal/config"
	"subpipe/internal/core/domain"
	"subpipe/internal/core/service/accessor"
	"subpipe/internal/core/service/cache"
	"subpipe/internal/core/service/lock"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	accessor *accessor.Accessor
	kv       *kvredis.Adapter
	mr       *miniredis.Miniredis
}

func newFixture(t *testing.T, lockCfg config.LockConfig) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	kv, err := kvredis.NewAdapter(context.Background(), config.RedisConfig{
		Addr:      mr.Addr(),
		OpTimeout: 3 * time.Second,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	c := cache.New(kv, config.CacheConfig{TTL: time.Hour}, logger)
	l := lock.New(kv, lockCfg, logger)

	return &fixture{
		accessor: accessor.New(c, l, lockCfg, logger),
		kv:       kv,
		mr:       mr,
	}
}

func defaultLockCfg() config.LockConfig {
	return config.LockConfig{
		Lease:        5 * time.Second,
		PollAttempts: 5,
		PollDelay:    100 * time.Millisecond,
	}
}

func TestFetch_CacheHitSkipsSource(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, defaultLockCfg())

	id := uuid.New()
	key := cache.MediaKey(id)
	cached := domain.MediaRecord{ID: id, Name: "cached.mp4"}

	c := cache.New(f.kv, config.CacheConfig{TTL: time.Hour}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, c.SetJSON(ctx, key, cached, 0))

	var calls atomic.Int32

	// Act
	got, err := accessor.Fetch(ctx, f.accessor, key, domain.CacheModeNormal, 0, func(context.Context) (domain.MediaRecord, error) {
		calls.Add(1)
		return domain.MediaRecord{}, nil
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, cached.Name, got.Name)
	assert.Equal(t, int32(0), calls.Load())
}

func TestFetch_ConcurrentMissesFetchSourceExactlyOnce(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, defaultLockCfg())

	id := uuid.New()
	key := cache.MediaKey(id)
	record := domain.MediaRecord{ID: id, Name: "cold.mp4"}

	var calls atomic.Int32
	fetch := func(context.Context) (domain.MediaRecord, error) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		return record, nil
	}

	// Act
	const callers = 10
	results := make([]domain.MediaRecord, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = accessor.Fetch(ctx, f.accessor, key, domain.CacheModeNormal, 0, fetch)
		}(i)
	}
	wg.Wait()

	// Assert
	assert.Equal(t, int32(1), calls.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, record.Name, results[i].Name)
	}
}

func TestFetch_ForceRefreshBypassesCachedValue(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, defaultLockCfg())

	id := uuid.New()
	key := cache.MediaKey(id)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := cache.New(f.kv, config.CacheConfig{TTL: time.Hour}, logger)
	require.NoError(t, c.SetJSON(ctx, key, domain.MediaRecord{ID: id, Name: "stale.mp4"}, 0))

	var calls atomic.Int32

	// Act
	got, err := accessor.Fetch(ctx, f.accessor, key, domain.CacheModeForceRefresh, 0, func(context.Context) (domain.MediaRecord, error) {
		calls.Add(1)
		return domain.MediaRecord{ID: id, Name: "fresh.mp4"}, nil
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "fresh.mp4", got.Name)

	// the refreshed value was written back
	var cached domain.MediaRecord
	require.NoError(t, c.GetJSON(ctx, key, &cached))
	assert.Equal(t, "fresh.mp4", cached.Name)
}

func TestFetch_SourceNotFoundPropagatesAndIsNotCached(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, defaultLockCfg())

	id := uuid.New()
	key := cache.MediaKey(id)

	// Act
	_, err := accessor.Fetch(ctx, f.accessor, key, domain.CacheModeNormal, 0, func(context.Context) (domain.MediaRecord, error) {
		return domain.MediaRecord{}, domain.ErrMediaNotFound
	})

	// Assert
	assert.ErrorIs(t, err, domain.ErrMediaNotFound)
	assert.False(t, f.mr.Exists(key))
	// the lock was released on the error path
	assert.False(t, f.mr.Exists(key+":lock"))
}

func TestFetch_PollReturnsValueFilledByHolder(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, defaultLockCfg())

	id := uuid.New()
	key := cache.MediaKey(id)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := cache.New(f.kv, config.CacheConfig{TTL: time.Hour}, logger)

	// simulate a holder mid-reconstruction
	held, err := f.kv.SetIfNotExists(ctx, key+":lock", []byte("1"), 5*time.Second)
	require.NoError(t, err)
	require.True(t, held)

	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = c.SetJSON(context.Background(), key, domain.MediaRecord{ID: id, Name: "filled.mp4"}, 0)
	}()

	// Act
	got, fetchErr := accessor.Fetch(ctx, f.accessor, key, domain.CacheModeNormal, 0, func(context.Context) (domain.MediaRecord, error) {
		t.Error("source must not be fetched while the lock is held elsewhere")
		return domain.MediaRecord{}, nil
	})

	// Assert
	require.NoError(t, fetchErr)
	assert.Equal(t, "filled.mp4", got.Name)
}

func TestFetch_ExhaustedPollBudgetFailsWithLockContention(t *testing.T) {
	// Arrange
	ctx := context.Background()
	cfg := defaultLockCfg()
	cfg.PollAttempts = 3
	cfg.PollDelay = 10 * time.Millisecond
	f := newFixture(t, cfg)

	id := uuid.New()
	key := cache.MediaKey(id)

	held, err := f.kv.SetIfNotExists(ctx, key+":lock", []byte("1"), 5*time.Second)
	require.NoError(t, err)
	require.True(t, held)

	// Act
	_, fetchErr := accessor.Fetch(ctx, f.accessor, key, domain.CacheModeNormal, 0, func(context.Context) (domain.MediaRecord, error) {
		return domain.MediaRecord{}, nil
	})

	// Assert
	assert.ErrorIs(t, fetchErr, domain.ErrLockContention)
}

func TestFetch_CacheUnavailableFallsBackToSource(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, defaultLockCfg())
	f.mr.Close()

	var calls atomic.Int32

	// Act
	got, err := accessor.Fetch(ctx, f.accessor, "media:any", domain.CacheModeNormal, 0, func(context.Context) (domain.MediaRecord, error) {
		calls.Add(1)
		return domain.MediaRecord{Name: "from-source.mp4"}, nil
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "from-source.mp4", got.Name)
}

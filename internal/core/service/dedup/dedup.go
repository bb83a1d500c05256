package dedup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"subpipe/internal/config"
	"subpipe/internal/core/domain"
	"subpipe/internal/core/port"
	"subpipe/internal/core/service/cache"

	"github.com/google/uuid"
)

type dedupStore struct {
	kv         port.KeyValueStore
	media      port.MediaRepository
	storage    port.ObjectStorage
	ttl        time.Duration
	sweepGrace time.Duration
	logger     *slog.Logger
}

// New creates the deduplication record store. Records exist purely for
// opportunistic reuse, so they carry a long TTL and are swept lazily.
func New(kv port.KeyValueStore, media port.MediaRepository, storage port.ObjectStorage, cfg config.CacheConfig, logger *slog.Logger) port.DedupStore {
	return &dedupStore{
		kv:         kv,
		media:      media,
		storage:    storage,
		ttl:        cfg.DedupTTL,
		sweepGrace: cfg.DedupSweepGrace,
		logger:     logger,
	}
}

// Store writes a record under its fingerprint with the dedup TTL
func (s *dedupStore) Store(ctx context.Context, record domain.DedupRecord) error {
	encoded, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: encoding dedup record: %v", domain.ErrCacheOperationFailed, err)
	}
	return s.kv.Set(ctx, cache.DedupKey(record.Fingerprint), encoded, s.ttl)
}

// Get returns the record for a fingerprint
func (s *dedupStore) Get(ctx context.Context, fingerprint string) (*domain.DedupRecord, error) {
	value, err := s.kv.Get(ctx, cache.DedupKey(fingerprint))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, domain.ErrDedupRecordNotFound
		}
		return nil, err
	}

	var record domain.DedupRecord
	if err := json.Unmarshal(value, &record); err != nil {
		return nil, fmt.Errorf("%w: decoding dedup record: %v", domain.ErrCacheOperationFailed, err)
	}
	return &record, nil
}

// UpdateSubtitleID links a completed subtitle to the record. The merge runs
// under an optimistic transaction so a concurrent writer's unrelated fields
// are never overwritten; a lost race surfaces as
// domain.ErrTransactionConflict and the caller decides whether to retry.
func (s *dedupStore) UpdateSubtitleID(ctx context.Context, fingerprint string, subtitleID uuid.UUID) error {
	return s.kv.Update(ctx, cache.DedupKey(fingerprint), func(current []byte) ([]byte, error) {
		if current == nil {
			return nil, domain.ErrDedupRecordNotFound
		}

		var record domain.DedupRecord
		if err := json.Unmarshal(current, &record); err != nil {
			return nil, fmt.Errorf("%w: decoding dedup record: %v", domain.ErrCacheOperationFailed, err)
		}

		record.SubtitleID = &subtitleID

		return json.Marshal(record)
	})
}

// Delete removes the record for a fingerprint
func (s *dedupStore) Delete(ctx context.Context, fingerprint string) error {
	return s.kv.Delete(ctx, cache.DedupKey(fingerprint))
}

// Sweep scans all dedup records and drops entries that are nearly expired,
// corrupt, or dangling (media record gone or its stored object deleted
// out-of-band). One bad entry never aborts the scan.
func (s *dedupStore) Sweep(ctx context.Context) (int, error) {
	keys, err := s.kv.Scan(ctx, cache.DedupPattern)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, key := range keys {
		drop, err := s.shouldDrop(ctx, key)
		if err != nil {
			s.logger.Warn("dedup sweep: skipping entry", "key", key, "error", err)
			continue
		}
		if !drop {
			continue
		}
		if err := s.kv.Delete(ctx, key); err != nil {
			s.logger.Warn("dedup sweep: failed to delete entry", "key", key, "error", err)
			continue
		}
		removed++
	}

	s.logger.Info("dedup sweep completed", "scanned", len(keys), "removed", removed)
	return removed, nil
}

func (s *dedupStore) shouldDrop(ctx context.Context, key string) (bool, error) {
	ttl, err := s.kv.TTL(ctx, key)
	if err != nil {
		return false, err
	}
	if ttl >= 0 && ttl < s.sweepGrace {
		return true, nil
	}

	value, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			// expired between scan and read
			return false, nil
		}
		return false, err
	}

	var record domain.DedupRecord
	if err := json.Unmarshal(value, &record); err != nil {
		s.logger.Warn("dedup sweep: dropping corrupt entry", "key", key)
		return true, nil
	}

	media, err := s.media.FindByID(ctx, record.MediaID)
	if err != nil {
		if errors.Is(err, domain.ErrMediaNotFound) {
			return true, nil
		}
		return false, err
	}

	exists, err := s.storage.Exists(ctx, media.StorageKey)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

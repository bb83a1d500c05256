package media

import (
	"context"
	"errors"

	"subpipe/internal/core/domain"

	"github.com/google/uuid"
)

// LookupFingerprint resolves a fingerprint to its dedup record. A record whose
// media no longer exists, or whose upload never finished, is dropped on the
// spot and reported as absent, so a stale entry cannot short-circuit an upload
// forever or point a caller at an object that is not there.
func (s *mediaService) LookupFingerprint(ctx context.Context, fingerprint string) (*domain.DedupRecord, error) {
	record, err := s.dedup.Get(ctx, fingerprint)
	if err != nil {
		return nil, err
	}

	media, err := s.repo.FindByID(ctx, record.MediaID)
	if err != nil {
		if errors.Is(err, domain.ErrMediaNotFound) {
			s.dropDanglingRecord(ctx, fingerprint, record.MediaID)
			return nil, domain.ErrDedupRecordNotFound
		}
		return nil, err
	}
	if media.Status != domain.MediaStatusUploaded {
		s.dropDanglingRecord(ctx, fingerprint, record.MediaID)
		return nil, domain.ErrDedupRecordNotFound
	}

	return record, nil
}

// RecordFingerprint stores the fingerprint of a fully uploaded media.
func (s *mediaService) RecordFingerprint(ctx context.Context, fingerprint string, mediaID uuid.UUID) error {
	return s.dedup.Store(ctx, domain.DedupRecord{Fingerprint: fingerprint, MediaID: mediaID})
}

func (s *mediaService) dropDanglingRecord(ctx context.Context, fingerprint string, mediaID uuid.UUID) {
	s.logger.Warn("dropping dangling dedup record", "fingerprint", fingerprint, "media_id", mediaID)
	if err := s.dedup.Delete(ctx, fingerprint); err != nil {
		s.logger.Warn("failed to drop dangling dedup record", "fingerprint", fingerprint, "error", err)
	}
}

package media

import (
	"context"
	"fmt"

	"subpipe/internal/core/domain"
	"subpipe/internal/core/service/cache"
)

// FinalizeUpload settles a media record once the object store reported the
// outcome of its upload. A successful upload records the fingerprint, making
// the media eligible for dedup hits; a failed one removes the stored object
// so the next attempt starts clean.
func (s *mediaService) FinalizeUpload(ctx context.Context, media domain.MediaRecord, uploadErr error) error {
	status := domain.MediaStatusUploaded
	if uploadErr != nil {
		status = domain.MediaStatusUploadFailed
	}

	if err := s.repo.UpdateStatus(ctx, media.ID, status); err != nil {
		return fmt.Errorf("updating media status: %w", err)
	}

	if uploadErr != nil {
		if err := s.storage.Delete(ctx, media.StorageKey); err != nil {
			s.logger.Warn("failed to remove object of failed upload", "key", media.StorageKey, "error", err)
		}
		s.logger.Error("upload failed", "media_id", media.ID, "error", uploadErr)
	} else {
		if media.Checksum != "" {
			if err := s.RecordFingerprint(ctx, media.Checksum, media.ID); err != nil {
				s.logger.Warn("failed to record fingerprint", "fingerprint", media.Checksum, "error", err)
			}
		}
		s.logger.Info("upload finalized", "media_id", media.ID)
	}

	s.invalidateMediaCache(ctx, media)
	return nil
}

func (s *mediaService) invalidateMediaCache(ctx context.Context, media domain.MediaRecord) {
	if err := s.cache.Delete(ctx, cache.MediaKey(media.ID)); err != nil {
		s.logger.Warn("failed to invalidate media cache", "media_id", media.ID, "error", err)
	}
	if err := s.cache.DeletePattern(ctx, cache.MediaListPattern); err != nil {
		s.logger.Warn("failed to invalidate media list cache", "error", err)
	}
}

package media

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// DeleteMedia removes a media item: the record is soft deleted, the stored
// object and the fingerprint are dropped best-effort.
func (s *mediaService) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	media, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting media record: %w", err)
	}

	if media.Checksum != "" {
		if err := s.dedup.Delete(ctx, media.Checksum); err != nil {
			s.logger.Warn("failed to drop fingerprint of deleted media", "fingerprint", media.Checksum, "error", err)
		}
	}
	if err := s.storage.Delete(ctx, media.StorageKey); err != nil {
		s.logger.Warn("failed to remove object of deleted media", "key", media.StorageKey, "error", err)
	}

	s.invalidateMediaCache(ctx, *media)
	s.logger.Info("media deleted", "media_id", id)
	return nil
}

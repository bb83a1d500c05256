package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subpipe/internal/core/domain"
	"subpipe/internal/core/service/cache"

	"github.com/google/uuid"
)

// RequestUpload issues a presigned upload ticket for a new video. When the
// declared checksum matches an earlier upload the stored bytes are reused and
// no ticket is issued.
func (s *mediaService) RequestUpload(ctx context.Context, name, mimeType string, sizeBytes int64, checksumSHA256 string) (*domain.UploadTicket, error) {
	if sizeBytes > s.uploadCfg.MaxSizeBytes {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrMediaTooLarge, sizeBytes)
	}

	resolvedMime, err := validateVideoFile(name, mimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidMediaType, err)
	}

	if checksumSHA256 != "" {
		record, err := s.LookupFingerprint(ctx, checksumSHA256)
		switch {
		case err == nil:
			s.logger.Info("upload deduplicated", "fingerprint", checksumSHA256, "media_id", record.MediaID)
			return &domain.UploadTicket{MediaID: record.MediaID, Deduplicated: true}, nil
		case !errors.Is(err, domain.ErrDedupRecordNotFound):
			// dedup is an optimization; a broken store must not block uploads
			s.logger.Warn("fingerprint lookup failed, proceeding with upload", "fingerprint", checksumSHA256, "error", err)
		}
	}

	mediaID := uuid.New()
	now := time.Now().UTC()
	media := domain.MediaRecord{
		ID:         mediaID,
		Name:       name,
		MimeType:   resolvedMime,
		SizeBytes:  sizeBytes,
		StorageKey: "media/" + mediaID.String(),
		Checksum:   checksumSHA256,
		Status:     domain.MediaStatusInitialized,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, media); err != nil {
		return nil, fmt.Errorf("creating media record: %w", err)
	}

	uploadURL, headers, expiresAt, err := s.storage.PresignUpload(ctx, media.StorageKey, checksumSHA256)
	if err != nil {
		return nil, fmt.Errorf("could not generate upload presigned url: %w", err)
	}

	if err := s.cache.DeletePattern(ctx, cache.MediaListPattern); err != nil {
		s.logger.Warn("failed to invalidate media list cache", "error", err)
	}

	s.logger.Info("upload requested", "media_id", mediaID, "name", name, "size_bytes", sizeBytes)

	return &domain.UploadTicket{
		MediaID:   mediaID,
		UploadURL: uploadURL,
		Headers:   headers,
		ExpiresAt: expiresAt,
	}, nil
}

package subtitle

import (
	"context"

	"subpipe/internal/core/domain"
	"subpipe/internal/core/service/accessor"
	"subpipe/internal/core/service/cache"

	"github.com/google/uuid"
)

// GetSubtitleByID returns the subtitle record and, once generation completed,
// a presigned download URL. The URL is minted per call and never cached.
func (s *subtitleService) GetSubtitleByID(ctx context.Context, id uuid.UUID, mode domain.CacheMode) (*domain.SubtitleRecord, *string, error) {
	record, err := accessor.Fetch(ctx, s.accessor, cache.SubtitleKey(id), mode, s.cacheCfg.TTL,
		func(ctx context.Context) (*domain.SubtitleRecord, error) {
			return s.repo.FindByID(ctx, id)
		})
	if err != nil {
		return nil, nil, err
	}

	if record.Status != domain.SubtitleStatusCompleted {
		return record, nil, nil
	}

	url, _, err := s.storage.PresignDownload(ctx, record.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return record, &url, nil
}

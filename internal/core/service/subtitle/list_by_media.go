package subtitle

import (
	"context"

	"subpipe/internal/core/domain"
	"subpipe/internal/core/service/accessor"
	"subpipe/internal/core/service/cache"

	"github.com/google/uuid"
)

func (s *subtitleService) ListSubtitlesByMedia(ctx context.Context, mediaID uuid.UUID, mode domain.CacheMode) ([]domain.SubtitleRecord, error) {
	return accessor.Fetch(ctx, s.accessor, cache.SubtitleListKey(mediaID), mode, s.cacheCfg.TTL,
		func(ctx context.Context) ([]domain.SubtitleRecord, error) {
			return s.repo.FindByMediaID(ctx, mediaID)
		})
}

package media

import (
	"context"

	"subpipe/internal/core/domain"
	"subpipe/internal/core/service/accessor"
	"subpipe/internal/core/service/cache"
)

const defaultListLimit = 50

func (s *mediaService) ListMedia(ctx context.Context, limit int, mode domain.CacheMode) ([]domain.MediaRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return accessor.Fetch(ctx, s.accessor, cache.MediaListKey(limit), mode, s.cacheCfg.TTL,
		func(ctx context.Context) ([]domain.MediaRecord, error) {
			return s.repo.List(ctx, limit)
		})
}

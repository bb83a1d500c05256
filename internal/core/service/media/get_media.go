package media

import (
	"context"

	"subpipe/internal/core/domain"
	"subpipe/internal/core/service/accessor"
	"subpipe/internal/core/service/cache"

	"github.com/google/uuid"
)

func (s *mediaService) GetMediaByID(ctx context.Context, id uuid.UUID, mode domain.CacheMode) (*domain.MediaRecord, error) {
	return accessor.Fetch(ctx, s.accessor, cache.MediaKey(id), mode, s.cacheCfg.TTL,
		func(ctx context.Context) (*domain.MediaRecord, error) {
			return s.repo.FindByID(ctx, id)
		})
}

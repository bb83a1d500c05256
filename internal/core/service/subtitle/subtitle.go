package subtitle

import (
	"log/slog"

	"subpipe/internal/config"
	"subpipe/internal/core/port"
	"subpipe/internal/core/service/accessor"
)

type subtitleService struct {
	repo      port.SubtitleRepository
	mediaRepo port.MediaRepository
	storage   port.ObjectStorage
	queue     port.JobQueue
	accessor  *accessor.Accessor
	cache     port.MetadataCache
	cacheCfg  config.CacheConfig
	logger    *slog.Logger
}

// NewSubtitleService creates a new subtitle service
func NewSubtitleService(
	repo port.SubtitleRepository,
	mediaRepo port.MediaRepository,
	storage port.ObjectStorage,
	queue port.JobQueue,
	acc *accessor.Accessor,
	metadataCache port.MetadataCache,
	cacheCfg config.CacheConfig,
	logger *slog.Logger,
) port.SubtitleService {
	return &subtitleService{
		repo:      repo,
		mediaRepo: mediaRepo,
		storage:   storage,
		queue:     queue,
		accessor:  acc,
		cache:     metadataCache,
		cacheCfg:  cacheCfg,
		logger:    logger,
	}
}

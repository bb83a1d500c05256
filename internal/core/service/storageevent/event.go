package storageevent

import (
	"log/slog"

	"subpipe/internal/core/port"
)

type storageEventService struct {
	storage      port.ObjectStorage
	mediaRepo    port.MediaRepository
	mediaService port.MediaService
	logger       *slog.Logger
}

// NewStorageEventService creates the handler for bucket notifications. Every
// finished upload lands here, where the stored object is checked against the
// declared size and checksum before the media record is settled.
func NewStorageEventService(storage port.ObjectStorage, mediaRepo port.MediaRepository, mediaService port.MediaService, logger *slog.Logger) port.MessageService {
	return &storageEventService{
		storage:      storage,
		mediaRepo:    mediaRepo,
		mediaService: mediaService,
		logger:       logger,
	}
}

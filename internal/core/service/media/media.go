package media

import (
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"subpipe/internal/config"
	"subpipe/internal/core/port"
	"subpipe/internal/core/service/accessor"
)

type mediaService struct {
	repo      port.MediaRepository
	storage   port.ObjectStorage
	dedup     port.DedupStore
	accessor  *accessor.Accessor
	cache     port.MetadataCache
	uploadCfg config.UploadConfig
	cacheCfg  config.CacheConfig
	logger    *slog.Logger
}

// NewMediaService creates a new media service
func NewMediaService(
	repo port.MediaRepository,
	storage port.ObjectStorage,
	dedupStore port.DedupStore,
	acc *accessor.Accessor,
	metadataCache port.MetadataCache,
	uploadCfg config.UploadConfig,
	cacheCfg config.CacheConfig,
	logger *slog.Logger,
) port.MediaService {
	return &mediaService{
		repo:      repo,
		storage:   storage,
		dedup:     dedupStore,
		accessor:  acc,
		cache:     metadataCache,
		uploadCfg: uploadCfg,
		cacheCfg:  cacheCfg,
		logger:    logger,
	}
}

// AllowedVideoMimeTypes is a whitelist of supported video MIME types and their
// extensions. This is deterministic and does NOT rely on OS mime databases
// (Docker-safe).
var AllowedVideoMimeTypes = map[string][]string{
	"video/mp4":        {".mp4"},
	"video/webm":       {".webm"},
	"video/quicktime":  {".mov"},
	"video/x-msvideo":  {".avi"},
	"video/x-matroska": {".mkv"},
	"video/ogg":        {".ogv"},
	"video/3gpp":       {".3gp"},
}

func validateVideoFile(filename string, contentType string) (string, error) {
	mimeType := extractMimeType(contentType)
	if mimeType == "" {
		return "", fmt.Errorf("invalid content type: %s", contentType)
	}

	allowedExts, ok := AllowedVideoMimeTypes[mimeType]
	if !ok {
		return "", fmt.Errorf("unsupported MIME type: %s", mimeType)
	}

	if err := validateExtension(filename, allowedExts); err != nil {
		return "", err
	}

	return mimeType, nil
}

func validateExtension(filename string, allowedExts []string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return fmt.Errorf("no file extension found")
	}

	for _, allowed := range allowedExts {
		if ext == allowed {
			return nil
		}
	}

	return fmt.Errorf(
		"extension %s is not allowed (expected one of: %v)",
		ext, allowedExts,
	)
}

func extractMimeType(contentType string) string {
	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mimeType
}

package port

import (
	"context"
	"io"
	"time"

	"subpipe/internal/core/domain"

	"github.com/google/uuid"
)

// MediaRepository is an interface to define media record persistence
type MediaRepository interface {
	Create(ctx context.Context, media domain.MediaRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaRecord, error)
	List(ctx context.Context, limit int) ([]domain.MediaRecord, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MediaStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MediaService is an interface to define the media service
type MediaService interface {
	RequestUpload(ctx context.Context, name, mimeType string, sizeBytes int64, checksumSHA256 string) (*domain.UploadTicket, error)
	GetMediaByID(ctx context.Context, id uuid.UUID, mode domain.CacheMode) (*domain.MediaRecord, error)
	ListMedia(ctx context.Context, limit int, mode domain.CacheMode) ([]domain.MediaRecord, error)
	DeleteMedia(ctx context.Context, id uuid.UUID) error
	FinalizeUpload(ctx context.Context, media domain.MediaRecord, uploadErr error) error
	LookupFingerprint(ctx context.Context, fingerprint string) (*domain.DedupRecord, error)
	RecordFingerprint(ctx context.Context, fingerprint string, mediaID uuid.UUID) error
}

// ObjectInfo describes a stored object
type ObjectInfo struct {
	Size           int64
	ChecksumSHA256 string
	ContentType    string
}

// ObjectStorage is an interface to define object storage interactions for
// media, intermediate audio and subtitle artifacts
type ObjectStorage interface {
	PresignUpload(ctx context.Context, key string, checksumSHA256 string) (string, map[string]string, *time.Time, error)
	PresignDownload(ctx context.Context, key string) (string, *time.Time, error)
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Stat(ctx context.Context, key string) (*ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

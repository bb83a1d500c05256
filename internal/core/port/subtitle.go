package port

import (
	"context"
	"time"

	"subpipe/internal/core/domain"

	"github.com/google/uuid"
)

// SubtitleRepository is an interface to define subtitle record persistence
type SubtitleRepository interface {
	Create(ctx context.Context, subtitle domain.SubtitleRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.SubtitleRecord, error)
	FindByMediaID(ctx context.Context, mediaID uuid.UUID) ([]domain.SubtitleRecord, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SubtitleStatus, failReason string) error
	MarkCompleted(ctx context.Context, id uuid.UUID, storageKey string, generatedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GenerateRequest is the result of enqueueing a subtitle generation
type GenerateRequest struct {
	JobID      uuid.UUID `json:"job_id"`
	SubtitleID uuid.UUID `json:"subtitle_id"`
}

// SubtitleService is an interface to define the subtitle service
type SubtitleService interface {
	GetSubtitleByID(ctx context.Context, id uuid.UUID, mode domain.CacheMode) (*domain.SubtitleRecord, *string, error)
	ListSubtitlesByMedia(ctx context.Context, mediaID uuid.UUID, mode domain.CacheMode) ([]domain.SubtitleRecord, error)
	EnqueueGenerate(ctx context.Context, mediaID uuid.UUID, language string, format domain.SubtitleFormat) (*GenerateRequest, error)
	GetJobStatus(ctx context.Context, jobID uuid.UUID) (*domain.Job, error)
}

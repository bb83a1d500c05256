package subtitle

import (
	"context"
	"fmt"
	"time"

	"subpipe/internal/core/domain"
	"subpipe/internal/core/port"
	"subpipe/internal/core/service/cache"

	"github.com/google/uuid"
)

// EnqueueGenerate registers a pending subtitle and hands the generation to the
// worker pipeline. The call returns once the job is queued; callers poll the
// job for progress.
func (s *subtitleService) EnqueueGenerate(ctx context.Context, mediaID uuid.UUID, language string, format domain.SubtitleFormat) (*port.GenerateRequest, error) {
	if format != domain.SubtitleFormatSRT && format != domain.SubtitleFormatVTT {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSubtitleFormat, format)
	}

	media, err := s.mediaRepo.FindByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	if media.Status != domain.MediaStatusUploaded {
		return nil, domain.ErrMediaNotReady
	}

	now := time.Now().UTC()
	record := domain.SubtitleRecord{
		ID:        uuid.New(),
		MediaID:   mediaID,
		Language:  language,
		Format:    format,
		Status:    domain.SubtitleStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("creating subtitle record: %w", err)
	}

	jobID, err := s.queue.Enqueue(ctx, domain.GenerateSubtitlesPayload{
		MediaID:    mediaID,
		SubtitleID: record.ID,
		Language:   language,
	})
	if err != nil {
		// roll the pending record back so a queue outage does not leave orphans
		if delErr := s.repo.Delete(ctx, record.ID); delErr != nil {
			s.logger.Error("failed to roll back subtitle record", "subtitle_id", record.ID, "error", delErr)
		}
		return nil, fmt.Errorf("enqueueing generation job: %w", err)
	}

	if err := s.cache.Delete(ctx, cache.SubtitleListKey(mediaID)); err != nil {
		s.logger.Warn("failed to invalidate subtitle list cache", "media_id", mediaID, "error", err)
	}

	s.logger.Info("subtitle generation enqueued",
		"media_id", mediaID, "subtitle_id", record.ID, "job_id", jobID, "language", language, "format", format)

	return &port.GenerateRequest{JobID: jobID, SubtitleID: record.ID}, nil
}

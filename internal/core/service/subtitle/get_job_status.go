package subtitle

import (
	"context"

	"subpipe/internal/core/domain"

	"github.com/google/uuid"
)

func (s *subtitleService) GetJobStatus(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	return s.queue.Status(ctx, jobID)
}

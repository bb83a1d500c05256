package jobqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"subpipe/internal/config"
	"subpipe/internal/core/domain"
	"subpipe/internal/core/port"
	"subpipe/internal/core/service/cache"

	"github.com/google/uuid"
)

const waitingQueue = "jobs:waiting"

// ProgressFunc is called by a handler after each pipeline stage
type ProgressFunc func(stage string, percent int, message string)

// Handler executes one job attempt
type Handler interface {
	Run(ctx context.Context, job *domain.Job, report ProgressFunc) (*domain.JobResult, error)
}

// Queue is the Redis-backed job pipeline: a FIFO of waiting job IDs plus one
// record per job. API handlers and workers share nothing but the backend.
type Queue struct {
	kv     port.KeyValueStore
	queue  port.QueueStore
	cfg    config.JobsConfig
	logger *slog.Logger
}

// New creates a Queue
func New(kv port.KeyValueStore, queue port.QueueStore, cfg config.JobsConfig, logger *slog.Logger) *Queue {
	return &Queue{
		kv:     kv,
		queue:  queue,
		cfg:    cfg,
		logger: logger,
	}
}

// Enqueue registers a GenerateSubtitles job and returns its ID immediately;
// the caller never blocks on pipeline execution.
func (q *Queue) Enqueue(ctx context.Context, payload domain.GenerateSubtitlesPayload) (uuid.UUID, error) {
	job := domain.Job{
		ID:         uuid.New(),
		Type:       domain.JobTypeGenerateSubtitles,
		Payload:    payload,
		State:      domain.JobStateWaiting,
		EnqueuedAt: time.Now().UTC(),
	}

	if err := q.saveJob(ctx, &job); err != nil {
		return uuid.Nil, fmt.Errorf("failed to save job record: %w", err)
	}
	if err := q.queue.Enqueue(ctx, waitingQueue, []byte(job.ID.String())); err != nil {
		return uuid.Nil, fmt.Errorf("failed to enqueue job: %w", err)
	}

	q.logger.Info("job enqueued", "job_id", job.ID, "media_id", payload.MediaID, "language", payload.Language)
	return job.ID, nil
}

// Status returns the current job record. Terminal jobs are retained for the
// configured window and then reaped by TTL, after which this reports
// domain.ErrJobNotFound.
func (q *Queue) Status(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	value, err := q.kv.Get(ctx, cache.JobKey(id))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}

	var job domain.Job
	if err := json.Unmarshal(value, &job); err != nil {
		return nil, fmt.Errorf("%w: decoding job record: %v", domain.ErrCacheOperationFailed, err)
	}
	return &job, nil
}

// saveJob persists the record with the retention TTL; every save refreshes
// the window so only settled jobs age out.
func (q *Queue) saveJob(ctx context.Context, job *domain.Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("%w: encoding job record: %v", domain.ErrCacheOperationFailed, err)
	}
	return q.kv.Set(ctx, cache.JobKey(job.ID), encoded, q.cfg.Retention)
}

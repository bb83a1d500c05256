package jobqueue

import (
	"context"
	"errors"
	"time"

	"subpipe/internal/core/domain"
	"subpipe/internal/core/service/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RunWorkers starts the worker pool and blocks until ctx is cancelled
func (q *Queue) RunWorkers(ctx context.Context, handler Handler) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < q.cfg.Workers; i++ {
		worker := i
		g.Go(func() error {
			q.workerLoop(ctx, worker, handler)
			return nil
		})
	}
	return g.Wait()
}

func (q *Queue) workerLoop(ctx context.Context, worker int, handler Handler) {
	q.logger.Info("worker started", "worker", worker)

	for {
		select {
		case <-ctx.Done():
			q.logger.Info("worker stopped", "worker", worker)
			return
		default:
		}

		value, err := q.queue.Dequeue(ctx, waitingQueue, q.cfg.DequeueWait)
		if err != nil {
			if errors.Is(err, domain.ErrQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				q.logger.Info("worker stopped", "worker", worker)
				return
			}
			q.logger.Error("failed to dequeue job", "worker", worker, "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		jobID, err := uuid.Parse(string(value))
		if err != nil {
			q.logger.Error("discarding malformed queue element", "worker", worker, "error", err)
			continue
		}

		q.process(ctx, worker, jobID, handler)
	}
}

// process runs one job attempt under a claim lease so a slow-but-alive worker
// is not duplicated by its peers.
func (q *Queue) process(ctx context.Context, worker int, jobID uuid.UUID, handler Handler) {
	job, err := q.Status(ctx, jobID)
	if err != nil {
		q.logger.Error("failed to load job record", "job_id", jobID, "error", err)
		return
	}

	claimKey := cache.JobKey(jobID) + ":claim"
	claimed, err := q.kv.SetIfNotExists(ctx, claimKey, []byte("1"), q.cfg.ClaimLease)
	if err != nil {
		q.logger.Error("failed to claim job", "job_id", jobID, "error", err)
		return
	}
	if !claimed {
		return
	}
	defer func() {
		if err := q.kv.Delete(context.WithoutCancel(ctx), claimKey); err != nil {
			q.logger.Warn("failed to release job claim", "job_id", jobID, "error", err)
		}
	}()

	heartbeatCtx, stopHeartbeat := context.WithCancel(ctx)
	defer stopHeartbeat()
	go q.heartbeat(heartbeatCtx, claimKey)

	now := time.Now().UTC()
	job.State = domain.JobStateActive
	job.Attempts++
	job.StartedAt = &now
	job.Progress = domain.JobProgress{}
	if err := q.saveJob(ctx, job); err != nil {
		q.logger.Error("failed to mark job active", "job_id", jobID, "error", err)
		return
	}

	q.logger.Info("job attempt started", "worker", worker, "job_id", jobID, "attempt", job.Attempts)

	report := func(stage string, percent int, message string) {
		job.Progress = domain.JobProgress{Stage: stage, Percent: percent, Message: message}
		if err := q.saveJob(ctx, job); err != nil {
			q.logger.Warn("failed to report job progress", "job_id", jobID, "stage", stage, "error", err)
		}
	}

	result, runErr := handler.Run(ctx, job, report)
	finished := time.Now().UTC()

	if runErr == nil {
		job.State = domain.JobStateCompleted
		job.Result = result
		job.Error = ""
		job.FinishedAt = &finished
		if err := q.saveJob(ctx, job); err != nil {
			q.logger.Error("failed to mark job completed", "job_id", jobID, "error", err)
		}
		q.logger.Info("job completed", "worker", worker, "job_id", jobID, "attempt", job.Attempts)
		return
	}

	job.Error = runErr.Error()

	if job.Attempts >= q.cfg.MaxAttempts {
		job.State = domain.JobStateFailed
		job.FinishedAt = &finished
		if err := q.saveJob(ctx, job); err != nil {
			q.logger.Error("failed to mark job failed", "job_id", jobID, "error", err)
		}
		q.logger.Error("job settled as failed", "job_id", jobID, "attempts", job.Attempts, "error", runErr)
		return
	}

	job.State = domain.JobStateWaiting
	if err := q.saveJob(ctx, job); err != nil {
		q.logger.Error("failed to mark job for retry", "job_id", jobID, "error", err)
		return
	}

	backoff := q.cfg.BackoffBase << (job.Attempts - 1)
	q.logger.Warn("job attempt failed, scheduling retry", "job_id", jobID, "attempt", job.Attempts, "backoff", backoff, "error", runErr)

	go func() {
		select {
		case <-ctx.Done():
			// a retry pending at shutdown is dropped; the job record stays
			// in the backend so operators can re-enqueue it
		case <-time.After(backoff):
			if err := q.queue.Enqueue(context.WithoutCancel(ctx), waitingQueue, []byte(jobID.String())); err != nil {
				q.logger.Error("failed to re-enqueue job", "job_id", jobID, "error", err)
			}
		}
	}()
}

// heartbeat extends the claim lease while the attempt is in progress
func (q *Queue) heartbeat(ctx context.Context, claimKey string) {
	ticker := time.NewTicker(q.cfg.Heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := q.kv.Set(ctx, claimKey, []byte("1"), q.cfg.ClaimLease); err != nil {
				q.logger.Warn("failed to extend job claim", "claim", claimKey, "error", err)
			}
		}
	}
}

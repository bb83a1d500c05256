package port

import (
	"context"

	"subpipe/internal/core/domain"

	"github.com/google/uuid"
)

// JobQueue is an interface to define the enqueue side of the job pipeline.
// Enqueue returns immediately; callers poll Status for progress.
type JobQueue interface {
	Enqueue(ctx context.Context, payload domain.GenerateSubtitlesPayload) (uuid.UUID, error)
	Status(ctx context.Context, id uuid.UUID) (*domain.Job, error)
}

// DedupStore is an interface to define the deduplication record store
type DedupStore interface {
	Store(ctx context.Context, record domain.DedupRecord) error
	Get(ctx context.Context, fingerprint string) (*domain.DedupRecord, error)
	// UpdateSubtitleID links a completed subtitle to the record, atomically
	// against concurrent writers. Returns domain.ErrTransactionConflict when
	// the optimistic commit lost the race.
	UpdateSubtitleID(ctx context.Context, fingerprint string, subtitleID uuid.UUID) error
	Delete(ctx context.Context, fingerprint string) error
	// Sweep scans all dedup records, dropping entries that are nearly expired
	// or reference missing media or storage objects. One bad entry does not
	// abort the scan.
	Sweep(ctx context.Context) (int, error)
}

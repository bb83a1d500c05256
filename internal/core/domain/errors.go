package domain

import (
	"errors"
	"fmt"
)

// ErrMediaNotFound is an error thrown when a media record is absent at the source of truth
var ErrMediaNotFound = errors.New("media not found")

// ErrSubtitleNotFound is an error thrown when a subtitle record is absent at the source of truth
var ErrSubtitleNotFound = errors.New("subtitle not found")

// ErrJobNotFound is an error thrown when a job record is absent or already reaped
var ErrJobNotFound = errors.New("job not found")

// ErrKeyNotFound is an error thrown when a key is not present in the key-value backend
var ErrKeyNotFound = errors.New("key not found")

// ErrCacheUnavailable is an error thrown when the key-value backend is unreachable.
// Callers must fall back to the source of truth rather than treating it as a miss.
var ErrCacheUnavailable = errors.New("cache backend unavailable")

// ErrCacheOperationFailed is an error thrown when a single cache operation fails
var ErrCacheOperationFailed = errors.New("cache operation failed")

// ErrLockContention is an error thrown when the retry budget for a contended lock is exhausted
var ErrLockContention = errors.New("lock contention")

// ErrTransactionConflict is an error thrown when an optimistic update lost the race
var ErrTransactionConflict = errors.New("transaction conflict")

// ErrTimeout is an error thrown when a remote call exceeded its deadline
var ErrTimeout = errors.New("operation timed out")

// ErrQueueEmpty is an error thrown when a dequeue found no waiting job
var ErrQueueEmpty = errors.New("queue empty")

// ErrMediaNotReady is an error thrown when media is not uploaded yet
var ErrMediaNotReady = errors.New("media not ready")

// ErrDedupRecordNotFound is an error thrown when no dedup record exists for a fingerprint
var ErrDedupRecordNotFound = errors.New("dedup record not found")

// ErrSizeMismatch is an error thrown when the stored object size differs from the declared size
var ErrSizeMismatch = errors.New("size mismatch")

// ErrChecksumMismatch is an error thrown when the stored object checksum differs from the declared checksum
var ErrChecksumMismatch = errors.New("checksum mismatch")

// ErrInvalidSubtitleFormat is an error thrown when a subtitle format is not supported
var ErrInvalidSubtitleFormat = errors.New("invalid subtitle format")

// ErrInvalidMediaType is an error thrown when the declared content type or extension is not supported
var ErrInvalidMediaType = errors.New("invalid media type")

// ErrMediaTooLarge is an error thrown when the declared size exceeds the upload limit
var ErrMediaTooLarge = errors.New("media too large")

// PipelineStageError wraps the error of a failing pipeline stage
type PipelineStageError struct {
	Stage string
	Err   error
}

func (e *PipelineStageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *PipelineStageError) Unwrap() error {
	return e.Err
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobType represents the kind of background job
type JobType string

const (
	JobTypeGenerateSubtitles JobType = "generate_subtitles"
)

// JobState represents the lifecycle state of a job
type JobState string

const (
	JobStateWaiting   JobState = "waiting"
	JobStateActive    JobState = "active"
	JobStateCompleted JobState = "completed"
	JobStateFailed    JobState = "failed"
)

// JobProgress is reported by the worker after each pipeline stage
type JobProgress struct {
	Stage   string `json:"stage"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// GenerateSubtitlesPayload is the payload of a GenerateSubtitles job
type GenerateSubtitlesPayload struct {
	MediaID    uuid.UUID `json:"media_id"`
	SubtitleID uuid.UUID `json:"subtitle_id"`
	Language   string    `json:"language"`
}

// JobResult carries the output of a completed job
type JobResult struct {
	SubtitleID uuid.UUID `json:"subtitle_id"`
	StorageKey string    `json:"storage_key"`
}

// Job is owned by the job pipeline. It is created on enqueue, mutated in place
// by the worker and retained for a bounded window after reaching a terminal
// state.
type Job struct {
	ID         uuid.UUID                `json:"id"`
	Type       JobType                  `json:"type"`
	Payload    GenerateSubtitlesPayload `json:"payload"`
	Attempts   int                      `json:"attempts"`
	State      JobState                 `json:"state"`
	Progress   JobProgress              `json:"progress"`
	Result     *JobResult               `json:"result,omitempty"`
	Error      string                   `json:"error,omitempty"`
	EnqueuedAt time.Time                `json:"enqueued_at"`
	StartedAt  *time.Time               `json:"started_at,omitempty"`
	FinishedAt *time.Time               `json:"finished_at,omitempty"`
}

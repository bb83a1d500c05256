package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubtitleStatus represents the generation status of a subtitle
type SubtitleStatus string

const (
	SubtitleStatusPending    SubtitleStatus = "pending"
	SubtitleStatusProcessing SubtitleStatus = "processing"
	SubtitleStatusCompleted  SubtitleStatus = "completed"
	SubtitleStatusFailed     SubtitleStatus = "failed"
)

// SubtitleFormat represents the output container of a subtitle artifact
type SubtitleFormat string

const (
	SubtitleFormatSRT SubtitleFormat = "srt"
	SubtitleFormatVTT SubtitleFormat = "vtt"
)

// SubtitleRecord represents a subtitle generated for a media item. A media item
// may carry several subtitle records, one per language and attempt.
type SubtitleRecord struct {
	ID          uuid.UUID      `json:"id"`
	MediaID     uuid.UUID      `json:"media_id"`
	Language    string         `json:"language"`
	Format      SubtitleFormat `json:"format"`
	StorageKey  string         `json:"storage_key,omitempty"`
	Status      SubtitleStatus `json:"status"`
	FailReason  string         `json:"fail_reason,omitempty"`
	GeneratedAt *time.Time     `json:"generated_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TranscriptSegment is one timed chunk of transcribed speech
type TranscriptSegment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

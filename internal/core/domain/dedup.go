package domain

import "github.com/google/uuid"

// DedupRecord maps a content fingerprint (sha256 hex) to the media record that
// first carried those bytes. SubtitleID is linked later, when a subtitle
// completes for the media, and is best-effort metadata.
type DedupRecord struct {
	Fingerprint string     `json:"fingerprint"`
	MediaID     uuid.UUID  `json:"media_id"`
	SubtitleID  *uuid.UUID `json:"subtitle_id,omitempty"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// MediaStatus represents the upload lifecycle status of a media item
type MediaStatus string

const (
	MediaStatusInitialized  MediaStatus = "initialized"
	MediaStatusUploaded     MediaStatus = "uploaded"
	MediaStatusUploadFailed MediaStatus = "upload_failed"
)

// MediaRecord represents an uploaded media item. The source of truth lives in
// the document store; cached copies are keyed by ID.
type MediaRecord struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	MimeType   string      `json:"mime_type"`
	SizeBytes  int64       `json:"size_bytes"`
	StorageKey string      `json:"storage_key"`
	Checksum   string      `json:"checksum"`
	Status     MediaStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	DeletedAt  *time.Time  `json:"deleted_at,omitempty"`
}

// CacheMode controls whether a read may be served from cache
type CacheMode string

const (
	// CacheModeNormal serves from cache when possible
	CacheModeNormal CacheMode = "normal"
	// CacheModeForceRefresh bypasses the cached value and reconstructs from the source
	CacheModeForceRefresh CacheMode = "force_refresh"
)

// UploadTicket is the result of an upload request. When Deduplicated is set the
// uploaded bytes already exist and MediaID points at the prior record.
type UploadTicket struct {
	MediaID      uuid.UUID         `json:"media_id"`
	Deduplicated bool              `json:"deduplicated"`
	UploadURL    string            `json:"upload_url,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	ExpiresAt    *time.Time        `json:"expires_at,omitempty"`
}

package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// Key builders shared by services and the worker so that invalidation and
// population always agree on naming.

func MediaKey(id uuid.UUID) string {
	return "media:" + id.String()
}

func MediaListKey(limit int) string {
	return fmt.Sprintf("media:list:%d", limit)
}

// MediaListPattern matches every cached media list variant
const MediaListPattern = "media:list*"

func SubtitleKey(id uuid.UUID) string {
	return "subtitle:" + id.String()
}

func SubtitleListKey(mediaID uuid.UUID) string {
	return "subtitle:media:" + mediaID.String()
}

func DedupKey(fingerprint string) string {
	return "dedup:" + fingerprint
}

// DedupPattern matches every dedup record, used by the sweep
const DedupPattern = "dedup:*"

func JobKey(id uuid.UUID) string {
	return "job:" + id.String()
}

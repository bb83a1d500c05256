package media

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"subpipe/internal/core/domain"

	"github.com/google/uuid"
)

// V1RequestUploadRequest is the request to register a media upload
type V1RequestUploadRequest struct {
	Name           string `json:"name"`
	ContentType    string `json:"content_type"`
	SizeBytes      int64  `json:"size_bytes"`
	ChecksumSha256 string `json:"checksum_sha256"`
}

// V1RequestUploadResponse is the response to register a media upload
type V1RequestUploadResponse struct {
	MediaID      uuid.UUID         `json:"media_id"`
	Deduplicated bool              `json:"deduplicated"`
	UploadURL    string            `json:"upload_url,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	ExpiresAt    *time.Time        `json:"expires_at,omitempty"`
}

// RequestUploadV1 is the function that handles RequestUpload
func (h *HandlerV1) RequestUploadV1(w http.ResponseWriter, r *http.Request) {

	var req V1RequestUploadRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding upload request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.ContentType == "" || req.SizeBytes == 0 {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	ticket, requestErr := h.mediaService.RequestUpload(r.Context(), req.Name, req.ContentType, req.SizeBytes, req.ChecksumSha256)
	switch {
	case errors.Is(requestErr, domain.ErrInvalidMediaType), errors.Is(requestErr, domain.ErrMediaTooLarge):
		h.logger.Error("invalid upload request", "error", requestErr)
		http.Error(w, requestErr.Error(), http.StatusBadRequest)
		return
	case requestErr != nil:
		h.logger.Error("error requesting upload ticket", "error", requestErr)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := V1RequestUploadResponse{
			MediaID:      ticket.MediaID,
			Deduplicated: ticket.Deduplicated,
			UploadURL:    ticket.UploadURL,
			Headers:      ticket.Headers,
			ExpiresAt:    ticket.ExpiresAt,
		}
		status := http.StatusCreated
		if ticket.Deduplicated {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

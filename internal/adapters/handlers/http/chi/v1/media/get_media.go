package media

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"subpipe/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1MediaResponse is the representation of a media item
type V1MediaResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toMediaResponse(m domain.MediaRecord) V1MediaResponse {
	return V1MediaResponse{
		ID:        m.ID,
		Name:      m.Name,
		MimeType:  m.MimeType,
		SizeBytes: m.SizeBytes,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// GetMediaV1 is the function that handles GetMedia
func (h *HandlerV1) GetMediaV1(w http.ResponseWriter, r *http.Request) {

	mediaID := chi.URLParam(r, "mediaID")
	uuidMediaID, parseErr := uuid.Parse(mediaID)
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}

	media, err := h.mediaService.GetMediaByID(r.Context(), uuidMediaID, cacheModeFromRequest(r))
	switch {
	case errors.Is(err, domain.ErrMediaNotFound):
		http.Error(w, "media not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrLockContention), errors.Is(err, domain.ErrCacheUnavailable), errors.Is(err, domain.ErrTimeout):
		h.logger.Error("media read temporarily unavailable", "media_id", uuidMediaID, "error", err)
		http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
		return
	case err != nil:
		h.logger.Error("error getting media", "media_id", uuidMediaID, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(toMediaResponse(*media)); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

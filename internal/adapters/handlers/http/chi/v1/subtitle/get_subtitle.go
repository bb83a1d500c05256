package subtitle

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"subpipe/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1SubtitleResponse is the representation of a subtitle
type V1SubtitleResponse struct {
	ID          uuid.UUID  `json:"id"`
	MediaID     uuid.UUID  `json:"media_id"`
	Language    string     `json:"language"`
	Format      string     `json:"format"`
	Status      string     `json:"status"`
	FailReason  string     `json:"fail_reason,omitempty"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	DownloadURL string     `json:"download_url,omitempty"`
}

func toSubtitleResponse(s domain.SubtitleRecord) V1SubtitleResponse {
	return V1SubtitleResponse{
		ID:          s.ID,
		MediaID:     s.MediaID,
		Language:    s.Language,
		Format:      string(s.Format),
		Status:      string(s.Status),
		FailReason:  s.FailReason,
		GeneratedAt: s.GeneratedAt,
		CreatedAt:   s.CreatedAt,
	}
}

// GetSubtitleV1 is the function that handles GetSubtitle
func (h *HandlerV1) GetSubtitleV1(w http.ResponseWriter, r *http.Request) {

	subtitleID := chi.URLParam(r, "subtitleID")
	uuidSubtitleID, parseErr := uuid.Parse(subtitleID)
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}

	record, downloadURL, err := h.subtitleService.GetSubtitleByID(r.Context(), uuidSubtitleID, cacheModeFromRequest(r))
	switch {
	case errors.Is(err, domain.ErrSubtitleNotFound):
		http.Error(w, "subtitle not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrLockContention), errors.Is(err, domain.ErrCacheUnavailable), errors.Is(err, domain.ErrTimeout):
		h.logger.Error("subtitle read temporarily unavailable", "subtitle_id", uuidSubtitleID, "error", err)
		http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
		return
	case err != nil:
		h.logger.Error("error getting subtitle", "subtitle_id", uuidSubtitleID, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := toSubtitleResponse(*record)
		if downloadURL != nil {
			resp.DownloadURL = *downloadURL
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

package subtitle

import (
	"encoding/json"
	"errors"
	"net/http"

	"subpipe/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1ListSubtitlesResponse is the response to list subtitles of a media item
type V1ListSubtitlesResponse struct {
	Items []V1SubtitleResponse `json:"items"`
}

// ListByMediaV1 is the function that handles ListByMedia
func (h *HandlerV1) ListByMediaV1(w http.ResponseWriter, r *http.Request) {

	mediaID := chi.URLParam(r, "mediaID")
	uuidMediaID, parseErr := uuid.Parse(mediaID)
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.subtitleService.ListSubtitlesByMedia(r.Context(), uuidMediaID, cacheModeFromRequest(r))
	switch {
	case errors.Is(err, domain.ErrLockContention), errors.Is(err, domain.ErrCacheUnavailable), errors.Is(err, domain.ErrTimeout):
		h.logger.Error("subtitle list temporarily unavailable", "media_id", uuidMediaID, "error", err)
		http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
		return
	case err != nil:
		h.logger.Error("error listing subtitles", "media_id", uuidMediaID, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := V1ListSubtitlesResponse{Items: make([]V1SubtitleResponse, 0, len(records))}
		for _, record := range records {
			resp.Items = append(resp.Items, toSubtitleResponse(record))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

package media

import (
	"errors"
	"net/http"

	"subpipe/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DeleteMediaV1 is the function that handles DeleteMedia
func (h *HandlerV1) DeleteMediaV1(w http.ResponseWriter, r *http.Request) {

	mediaID := chi.URLParam(r, "mediaID")
	uuidMediaID, parseErr := uuid.Parse(mediaID)
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}

	err := h.mediaService.DeleteMedia(r.Context(), uuidMediaID)
	switch {
	case errors.Is(err, domain.ErrMediaNotFound):
		http.Error(w, "media not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error deleting media", "media_id", uuidMediaID, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		w.WriteHeader(http.StatusNoContent)
		return
	}
}

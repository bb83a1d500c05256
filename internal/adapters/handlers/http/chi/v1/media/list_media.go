package media

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"subpipe/internal/core/domain"
)

// V1ListMediaResponse is the response to list media
type V1ListMediaResponse struct {
	Items []V1MediaResponse `json:"items"`
}

// ListMediaV1 is the function that handles ListMedia
func (h *HandlerV1) ListMediaV1(w http.ResponseWriter, r *http.Request) {

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := h.mediaService.ListMedia(r.Context(), limit, cacheModeFromRequest(r))
	switch {
	case errors.Is(err, domain.ErrLockContention), errors.Is(err, domain.ErrCacheUnavailable), errors.Is(err, domain.ErrTimeout):
		h.logger.Error("media list temporarily unavailable", "error", err)
		http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
		return
	case err != nil:
		h.logger.Error("error listing media", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := V1ListMediaResponse{Items: make([]V1MediaResponse, 0, len(records))}
		for _, record := range records {
			resp.Items = append(resp.Items, toMediaResponse(record))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

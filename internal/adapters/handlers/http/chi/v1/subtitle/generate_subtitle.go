package subtitle

import (
	"encoding/json"
	"errors"
	"net/http"

	"subpipe/internal/core/domain"

	"github.com/google/uuid"
)

// V1GenerateSubtitleRequest is the request to generate a subtitle
type V1GenerateSubtitleRequest struct {
	MediaID  uuid.UUID `json:"media_id"`
	Language string    `json:"language"`
	Format   string    `json:"format"`
}

// V1GenerateSubtitleResponse is the response to generate a subtitle
type V1GenerateSubtitleResponse struct {
	JobID      uuid.UUID `json:"job_id"`
	SubtitleID uuid.UUID `json:"subtitle_id"`
}

// GenerateSubtitleV1 is the function that handles GenerateSubtitle
func (h *HandlerV1) GenerateSubtitleV1(w http.ResponseWriter, r *http.Request) {

	var req V1GenerateSubtitleRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding generate request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.MediaID == uuid.Nil || req.Language == "" || req.Format == "" {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	request, generateErr := h.subtitleService.EnqueueGenerate(r.Context(), req.MediaID, req.Language, domain.SubtitleFormat(req.Format))
	switch {
	case errors.Is(generateErr, domain.ErrInvalidSubtitleFormat):
		http.Error(w, generateErr.Error(), http.StatusBadRequest)
		return
	case errors.Is(generateErr, domain.ErrMediaNotFound):
		http.Error(w, "media not found", http.StatusNotFound)
		return
	case errors.Is(generateErr, domain.ErrMediaNotReady):
		http.Error(w, "media not ready", http.StatusConflict)
		return
	case generateErr != nil:
		h.logger.Error("error enqueueing subtitle generation", "media_id", req.MediaID, "error", generateErr)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := V1GenerateSubtitleResponse{
			JobID:      request.JobID,
			SubtitleID: request.SubtitleID,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

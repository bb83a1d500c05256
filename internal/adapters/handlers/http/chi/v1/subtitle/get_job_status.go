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

// V1JobStatusResponse is the representation of a background job
type V1JobStatusResponse struct {
	ID         uuid.UUID  `json:"id"`
	State      string     `json:"state"`
	Attempts   int        `json:"attempts"`
	Stage      string     `json:"stage"`
	Percent    int        `json:"percent"`
	Message    string     `json:"message,omitempty"`
	SubtitleID uuid.UUID  `json:"subtitle_id"`
	Error      string     `json:"error,omitempty"`
	EnqueuedAt time.Time  `json:"enqueued_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// GetJobStatusV1 is the function that handles GetJobStatus
func (h *HandlerV1) GetJobStatusV1(w http.ResponseWriter, r *http.Request) {

	jobID := chi.URLParam(r, "jobID")
	uuidJobID, parseErr := uuid.Parse(jobID)
	if parseErr != nil {
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
		return
	}

	job, err := h.subtitleService.GetJobStatus(r.Context(), uuidJobID)
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		http.Error(w, "job not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error getting job status", "job_id", uuidJobID, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	default:
		resp := V1JobStatusResponse{
			ID:         job.ID,
			State:      string(job.State),
			Attempts:   job.Attempts,
			Stage:      job.Progress.Stage,
			Percent:    job.Progress.Percent,
			Message:    job.Progress.Message,
			SubtitleID: job.Payload.SubtitleID,
			Error:      job.Error,
			EnqueuedAt: job.EnqueuedAt,
			FinishedAt: job.FinishedAt,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

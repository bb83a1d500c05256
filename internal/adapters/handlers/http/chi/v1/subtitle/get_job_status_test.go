package subtitle_test

import (
	"encoding/json"
	"io"
	"log/slog"
	http2 "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"subpipe/internal/adapters/handlers/http/chi"
	subtitle2 "subpipe/internal/adapters/handlers/http/chi/v1/subtitle"
	"subpipe/internal/core/domain"
	"subpipe/internal/core/service/subtitle"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetJobStatusV1(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success - active job reports progress", func(t *testing.T) {
		// Arrange
		jobID := uuid.New()
		subtitleID := uuid.New()
		job := &domain.Job{
			ID:       jobID,
			Type:     domain.JobTypeGenerateSubtitles,
			Payload:  domain.GenerateSubtitlesPayload{MediaID: uuid.New(), SubtitleID: subtitleID, Language: "en"},
			Attempts: 1,
			State:    domain.JobStateActive,
			Progress: domain.JobProgress{
				Stage:   "transcribe",
				Percent: 60,
				Message: "transcribing audio",
			},
			EnqueuedAt: time.Now().UTC(),
		}

		mockService := subtitle.NewMockSubtitleService()
		mockService.On("GetJobStatus", mock.Anything, jobID).Return(job, nil)

		handler := subtitle2.NewSubtitleHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, nil, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/subtitle/job/"+jobID.String(), nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)

		var response subtitle2.V1JobStatusResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, jobID, response.ID)
		assert.Equal(t, string(domain.JobStateActive), response.State)
		assert.Equal(t, "transcribe", response.Stage)
		assert.Equal(t, 60, response.Percent)
		assert.Equal(t, subtitleID, response.SubtitleID)

		mockService.AssertExpectations(t)
	})

	t.Run("success - failed job carries error", func(t *testing.T) {
		// Arrange
		jobID := uuid.New()
		finishedAt := time.Now().UTC()
		job := &domain.Job{
			ID:         jobID,
			State:      domain.JobStateFailed,
			Attempts:   3,
			Error:      "transcribe: upstream timeout",
			EnqueuedAt: time.Now().UTC().Add(-time.Minute),
			FinishedAt: &finishedAt,
		}

		mockService := subtitle.NewMockSubtitleService()
		mockService.On("GetJobStatus", mock.Anything, jobID).Return(job, nil)

		handler := subtitle2.NewSubtitleHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, nil, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/subtitle/job/"+jobID.String(), nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)

		var response subtitle2.V1JobStatusResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, string(domain.JobStateFailed), response.State)
		assert.Equal(t, 3, response.Attempts)
		assert.Equal(t, "transcribe: upstream timeout", response.Error)
		assert.NotNil(t, response.FinishedAt)

		mockService.AssertExpectations(t)
	})

	t.Run("error - job not found", func(t *testing.T) {
		// Arrange
		jobID := uuid.New()

		mockService := subtitle.NewMockSubtitleService()
		mockService.On("GetJobStatus", mock.Anything, jobID).
			Return((*domain.Job)(nil), domain.ErrJobNotFound)

		handler := subtitle2.NewSubtitleHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, nil, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/subtitle/job/"+jobID.String(), nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - invalid job ID format", func(t *testing.T) {
		// Arrange
		mockService := subtitle.NewMockSubtitleService()
		handler := subtitle2.NewSubtitleHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, nil, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/subtitle/job/not-a-uuid", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
	})
}

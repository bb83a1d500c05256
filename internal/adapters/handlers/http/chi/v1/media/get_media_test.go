package media_test

import (
	"encoding/json"
	"io"
	"log/slog"
	http2 "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"subpipe/internal/adapters/handlers/http/chi"
	media2 "subpipe/internal/adapters/handlers/http/chi/v1/media"
	"subpipe/internal/core/domain"
	"subpipe/internal/core/service/media"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetMediaV1(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success - get media", func(t *testing.T) {
		// Arrange
		mediaID := uuid.New()
		record := &domain.MediaRecord{
			ID:        mediaID,
			Name:      "clip.mp4",
			MimeType:  "video/mp4",
			SizeBytes: 2048,
			Status:    domain.MediaStatusUploaded,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}

		mockService := media.NewMockMediaService()
		mockService.On("GetMediaByID", mock.Anything, mediaID, domain.CacheModeNormal).
			Return(record, nil)

		handler := media2.NewMediaHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/media/"+mediaID.String(), nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response media2.V1MediaResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, mediaID, response.ID)
		assert.Equal(t, "clip.mp4", response.Name)
		assert.Equal(t, string(domain.MediaStatusUploaded), response.Status)

		mockService.AssertExpectations(t)
	})

	t.Run("success - refresh query bypasses cache", func(t *testing.T) {
		// Arrange
		mediaID := uuid.New()
		record := &domain.MediaRecord{ID: mediaID, Name: "clip.mp4", Status: domain.MediaStatusUploaded}

		mockService := media.NewMockMediaService()
		mockService.On("GetMediaByID", mock.Anything, mediaID, domain.CacheModeForceRefresh).
			Return(record, nil)

		handler := media2.NewMediaHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/media/"+mediaID.String()+"?refresh=true", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - media not found", func(t *testing.T) {
		// Arrange
		mediaID := uuid.New()

		mockService := media.NewMockMediaService()
		mockService.On("GetMediaByID", mock.Anything, mediaID, domain.CacheModeNormal).
			Return((*domain.MediaRecord)(nil), domain.ErrMediaNotFound)

		handler := media2.NewMediaHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/media/"+mediaID.String(), nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - lock contention maps to 503", func(t *testing.T) {
		// Arrange
		mediaID := uuid.New()

		mockService := media.NewMockMediaService()
		mockService.On("GetMediaByID", mock.Anything, mediaID, domain.CacheModeNormal).
			Return((*domain.MediaRecord)(nil), domain.ErrLockContention)

		handler := media2.NewMediaHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/media/"+mediaID.String(), nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "temporarily unavailable")
		mockService.AssertExpectations(t)
	})

	t.Run("error - invalid media ID format", func(t *testing.T) {
		// Arrange
		mockService := media.NewMockMediaService()
		handler := media2.NewMediaHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/media/invalid-uuid", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
	})
}

package media_test

import (
	"encoding/json"
	"io"
	"log/slog"
	http2 "net/http"
	"net/http/httptest"
	"testing"

	"subpipe/internal/adapters/handlers/http/chi"
	media2 "subpipe/internal/adapters/handlers/http/chi/v1/media"
	"subpipe/internal/core/domain"
	"subpipe/internal/core/service/media"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListMediaV1(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success - list with explicit limit", func(t *testing.T) {
		// Arrange
		records := []domain.MediaRecord{
			{ID: uuid.New(), Name: "a.mp4", Status: domain.MediaStatusUploaded},
			{ID: uuid.New(), Name: "b.mp4", Status: domain.MediaStatusInitialized},
		}

		mockService := media.NewMockMediaService()
		mockService.On("ListMedia", mock.Anything, 2, domain.CacheModeNormal).
			Return(records, nil)

		handler := media2.NewMediaHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/media/?limit=2", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)

		var response media2.V1ListMediaResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Len(t, response.Items, 2)
		assert.Equal(t, "a.mp4", response.Items[0].Name)

		mockService.AssertExpectations(t)
	})

	t.Run("success - empty list stays an array", func(t *testing.T) {
		// Arrange
		mockService := media.NewMockMediaService()
		mockService.On("ListMedia", mock.Anything, 0, domain.CacheModeNormal).
			Return([]domain.MediaRecord{}, nil)

		handler := media2.NewMediaHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/media/", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		assert.JSONEq(t, `{"items":[]}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("error - invalid limit", func(t *testing.T) {
		// Arrange
		mockService := media.NewMockMediaService()
		handler := media2.NewMediaHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/media/?limit=abc", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "ListMedia", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error - cache unavailable maps to 503", func(t *testing.T) {
		// Arrange
		mockService := media.NewMockMediaService()
		mockService.On("ListMedia", mock.Anything, 0, domain.CacheModeNormal).
			Return([]domain.MediaRecord(nil), domain.ErrCacheUnavailable)

		handler := media2.NewMediaHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/media/", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusServiceUnavailable, w.Code)
		mockService.AssertExpectations(t)
	})
}

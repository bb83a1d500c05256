package media

import (
	"log/slog"
	"net/http"

	"subpipe/internal/core/domain"
	"subpipe/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 media routes
type HandlerV1 struct {
	mediaService port.MediaService
	logger       *slog.Logger
}

// NewMediaHandlerV1 creates HandlerV1
func NewMediaHandlerV1(service port.MediaService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		mediaService: service,
		logger:       logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/upload", h.RequestUploadV1)
	router.Get("/", h.ListMediaV1)
	router.Get("/{mediaID}", h.GetMediaV1)
	router.Delete("/{mediaID}", h.DeleteMediaV1)

	return router
}

// cacheModeFromRequest maps the refresh query param to a cache mode
func cacheModeFromRequest(r *http.Request) domain.CacheMode {
	if r.URL.Query().Get("refresh") == "true" {
		return domain.CacheModeForceRefresh
	}
	return domain.CacheModeNormal
}

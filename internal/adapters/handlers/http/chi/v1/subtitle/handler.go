package subtitle

import (
	"log/slog"
	"net/http"

	"subpipe/internal/core/domain"
	"subpipe/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 subtitle routes
type HandlerV1 struct {
	subtitleService port.SubtitleService
	logger          *slog.Logger
}

// NewSubtitleHandlerV1 creates HandlerV1
func NewSubtitleHandlerV1(service port.SubtitleService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		subtitleService: service,
		logger:          logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.GenerateSubtitleV1)
	router.Get("/{subtitleID}", h.GetSubtitleV1)
	router.Get("/media/{mediaID}", h.ListByMediaV1)
	router.Get("/job/{jobID}", h.GetJobStatusV1)

	return router
}

// cacheModeFromRequest maps the refresh query param to a cache mode
func cacheModeFromRequest(r *http.Request) domain.CacheMode {
	if r.URL.Query().Get("refresh") == "true" {
		return domain.CacheModeForceRefresh
	}
	return domain.CacheModeNormal
}

package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/schedule-board-service/internal/http/handlers"
	"github.com/preston-bernstein/schedule-board-service/internal/http/middleware"
	"github.com/preston-bernstein/schedule-board-service/internal/metrics"
	"github.com/preston-bernstein/schedule-board-service/internal/web"
)

// NewRouter registers the page, API, probe and asset routes.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(logger, recorder))

	r.Get("/", handler.Page)
	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Get("/board", handler.Board)
		r.Get("/timeslots/{index}", handler.Timeslot)
		r.Get("/teams/{team}/members", handler.Members)
		r.Get("/sprites", handler.Sprites)
	})

	r.Handle("/static/*", nethttp.StripPrefix("/static/", web.StaticHandler()))
	return r
}

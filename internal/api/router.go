package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/starford/careergraph/internal/metrics"
)

// NewRouter builds the full HTTP surface. m and events may be nil; events,
// when set, is mounted at GET /events.
func NewRouter(src EngineSource, m *metrics.Metrics, events http.Handler) chi.Router {
	h := NewHandler(src, m)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware)

	r.Get("/health/live", h.Live)
	r.Get("/health/ready", h.Ready)

	r.Get("/paths_with_followers/{start_title}", h.PathsWithFollowers)
	r.Get("/current_title/{title_name}", h.CurrentHolders)
	r.Get("/titles", h.ListTitles)
	r.Get("/titles/{person_id}", h.TitlesHeldBy)

	if m != nil {
		r.Handle("/metrics", m.Handler())
	}
	if events != nil {
		r.Get("/events", events.ServeHTTP)
	}

	return r
}

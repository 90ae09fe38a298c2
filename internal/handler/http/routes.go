package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// the websocket upgrade needs the raw connection, so no compression
	router.Get("/ws", h.realtime)

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getServerVersion)

		r.Route("/api/scopes/{scope}", func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/customers", h.listCustomers)
			r.Get("/entries", h.listEntries)
			r.With(h.verifyHash).Post("/submissions", h.submit)

			r.Get("/reports/entries", h.reportEntries)
			r.Get("/reports/summary", h.reportSummary)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
)

// withLogging writes one access line per request. Server errors are logged
// at error level and client errors at warn level.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(rw, r)

		log := logger.FromRequest(r)
		var event *zerolog.Event
		switch {
		case rw.status >= http.StatusInternalServerError:
			event = log.Error()
		case rw.status >= http.StatusBadRequest:
			event = log.Warn()
		default:
			event = log.Info()
		}

		// chi fills the route context while routing, after this middleware ran
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				event = event.Str("route", pattern)
			}
			if scope := rctx.URLParam("scope"); scope != "" {
				event = event.Str("scope", scope)
			}
		}

		event.
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", rw.status).
			Int("size", rw.size).
			Dur("duration", time.Since(started)).
			Send()
	})
}

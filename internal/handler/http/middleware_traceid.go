package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	traceIDHeader = "X-Trace-ID"
	maxTraceIDLen = 64
)

// traceIDFrom returns the caller's trace id when it is at most maxTraceIDLen
// token characters, otherwise a fresh uuid.
func traceIDFrom(r *http.Request) string {
	id := r.Header.Get(traceIDHeader)
	if id == "" || len(id) > maxTraceIDLen {
		return uuid.NewString()
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return uuid.NewString()
		}
	}
	return id
}

func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := traceIDFrom(r)
		w.Header().Set(traceIDHeader, traceID)

		reqLogger := h.logger.GetChildLogger()
		reqLogger.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		next.ServeHTTP(w, r.WithContext(reqLogger.WithContext(r.Context())))
	})
}

package http

import (
	"net/http"
	"time"

	"github.com/okoval/notekeeper/internal/logger"
)

// withLogging emits one access-log line per request with the final status,
// body size and handling duration. It relies on withTraceID running first so
// the line carries the request's trace_id.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)

		log.Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", rw.status).
			Int("size", rw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}

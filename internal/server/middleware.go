package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// instrument logs each request and records it in the Prometheus collectors.
// The route label uses the chi pattern, not the raw path, so ids do not
// explode label cardinality.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(recorder, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		code := recorder.code
		if code == 0 {
			code = http.StatusOK
		}
		elapsed := time.Since(started)

		s.metrics.observe(route, r.Method, code, elapsed)
		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.Int("status", code),
			slog.Duration("elapsed", elapsed),
		)
	})
}

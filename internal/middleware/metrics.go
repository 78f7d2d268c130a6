package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/smarttravel/internal/metrics"
)

// NewMetrics returns a middleware that records request counts and latency
// by chi route pattern, so /api/trips/{id} is one series regardless of id.
// Unmatched requests are recorded under "unmatched".
func NewMetrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := routePattern(r)
			if route == "" {
				route = "unmatched"
			}
			m.ObserveRequest(r.Method, route, ww.Status(), time.Since(start))
		})
	}
}

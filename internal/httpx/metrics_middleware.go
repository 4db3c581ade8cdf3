package httpx

import (
	"net/http"
	"time"

	"bookcatalog/internal/metrics"
)

// MetricsMiddleware records request counts and latencies labelled by the matched
// ServeMux pattern.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := wrap(w)

		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(r.Method, route, rw.statusCode, time.Since(start))
	})
}

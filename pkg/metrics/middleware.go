package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Middleware records a counter and a duration observation for every
// request. The path label uses the chi route pattern when available, so
// parameterized routes collapse into one series instead of one per URL.
func (m *Metrics) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}
			status := strconv.Itoa(ww.Status())

			m.requests.WithLabelValues(r.Method, path, status).Inc()
			m.duration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/restaurant-backend/pkg/metrics"
)

// Metrics records request latency and status under the matched chi route
// pattern, so /api/menu-items/{id} stays one series.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)
			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			m.Observe(r.Method, matchedPattern(r), rec.status, time.Since(start))
		})
	}
}

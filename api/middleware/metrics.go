package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avidalh/electrostore-gateway/pkg/metrics"
)

// Metrics records duration and status for every request, labeled by the chi
// route pattern so path parameters do not explode the cardinality.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			m.ObserveRequest(r.Method, routePattern(r), strconv.Itoa(rec.status), time.Since(start))
		})
	}
}

package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request-level metadata for the gateway plus the
// checkout counters surfaced on /metrics.
type HTTPMetrics struct {
	duration        *prometheus.HistogramVec
	checkoutSuccess prometheus.Counter
	checkoutFailure prometheus.Counter
}

// NewHTTPMetrics registers the gateway metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of gateway HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	checkoutSuccess := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_success_total",
		Help: "Successful checkout submissions.",
	})
	checkoutFailure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_failure_total",
		Help: "Failed checkout submissions.",
	})
	reg.MustRegister(duration, checkoutSuccess, checkoutFailure)
	return &HTTPMetrics{
		duration:        duration,
		checkoutSuccess: checkoutSuccess,
		checkoutFailure: checkoutFailure,
	}
}

// ObserveRequest records one completed request.
func (m *HTTPMetrics) ObserveRequest(method, route string, status string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(method), normalizeLabel(route), status).Observe(duration.Seconds())
}

// IncCheckoutSuccess increments the checkout success counter.
func (m *HTTPMetrics) IncCheckoutSuccess() {
	if m == nil || m.checkoutSuccess == nil {
		return
	}
	m.checkoutSuccess.Inc()
}

// IncCheckoutFailure increments the checkout failure counter.
func (m *HTTPMetrics) IncCheckoutFailure() {
	if m == nil || m.checkoutFailure == nil {
		return
	}
	m.checkoutFailure.Inc()
}

func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "formify",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "formify",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "formify",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	responsesSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "formify",
			Subsystem: "forms",
			Name:      "responses_submitted_total",
			Help:      "Total number of accepted form responses.",
		},
		[]string{"respondent"},
	)

	missingBlocks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "formify",
			Subsystem: "templates",
			Name:      "missing_blocks_total",
			Help:      "Block references skipped while resolving a template.",
		},
		[]string{"template_id"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		responsesSubmitted,
		missingBlocks,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RequestStarted bumps the in-flight gauge and returns the matching decrement.
func RequestStarted() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, path, status string, seconds float64) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordResponseSubmitted counts an accepted submission.
func RecordResponseSubmitted(authenticated bool) {
	label := "anonymous"
	if authenticated {
		label = "user"
	}
	responsesSubmitted.WithLabelValues(label).Inc()
}

// RecordMissingBlocks counts block ids a template referenced but the registry lacked.
func RecordMissingBlocks(templateID string, n int) {
	if n <= 0 {
		return
	}
	missingBlocks.WithLabelValues(templateID).Add(float64(n))
}

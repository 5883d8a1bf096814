package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors exposed on /metrics.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hirenest",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hirenest",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hirenest",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	resumeUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hirenest",
			Subsystem: "storage",
			Name:      "uploads_total",
			Help:      "Resume upload attempts by backend and outcome.",
		},
		[]string{"backend", "outcome"},
	)

	resumeDeletes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hirenest",
			Subsystem: "storage",
			Name:      "deletes_total",
			Help:      "Resume deletions by backend and outcome.",
		},
		[]string{"backend", "outcome"},
	)

	emailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hirenest",
			Subsystem: "mail",
			Name:      "messages_total",
			Help:      "Outgoing email attempts by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	recommendationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hirenest",
			Subsystem: "recommendations",
			Name:      "refresh_total",
			Help:      "Recommendation refreshes by trigger and outcome.",
		},
		[]string{"trigger", "outcome"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpInFlight,
		httpRequests,
		httpDuration,
		resumeUploads,
		resumeDeletes,
		emailsSent,
		recommendationRuns,
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func IncrementInFlight() { httpInFlight.Inc() }
func DecrementInFlight() { httpInFlight.Dec() }

// RecordHTTPRequest records one finished request. path should be the route
// template, not the raw URL, to keep label cardinality bounded.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordUpload(backend string, err error) {
	resumeUploads.WithLabelValues(backend, outcome(err)).Inc()
}

func RecordDelete(backend string, err error) {
	resumeDeletes.WithLabelValues(backend, outcome(err)).Inc()
}

func RecordEmail(kind string, err error) {
	emailsSent.WithLabelValues(kind, outcome(err)).Inc()
}

func RecordRecommendationRun(trigger string, err error) {
	recommendationRuns.WithLabelValues(trigger, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the engine's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "velorace",
			Subsystem: "engine",
			Name:      "operations_total",
			Help:      "Mutating operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "velorace",
			Subsystem: "engine",
			Name:      "operation_duration_seconds",
			Help:      "Duration of mutating operations including persistence.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"operation"},
	)

	eventsSpawned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "velorace",
			Subsystem: "community",
			Name:      "events_spawned_total",
			Help:      "Community events unlocked by pool threshold crossings.",
		},
	)

	subscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "velorace",
			Subsystem: "engine",
			Name:      "subscribers",
			Help:      "Registered change listeners.",
		},
	)
)

func init() {
	Registry.MustRegister(operations, operationDuration, eventsSpawned, subscribers)
}

// Outcome labels.
const (
	OutcomeCommitted = "committed"
	OutcomeRefused   = "refused"
	OutcomeNoop      = "noop"
	OutcomeFailed    = "failed"
)

// ObserveOperation records one finished operation.
func ObserveOperation(operation, outcome string, d time.Duration) {
	operations.WithLabelValues(operation, outcome).Inc()
	operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func EventSpawned() {
	eventsSpawned.Inc()
}

func SetSubscribers(n int) {
	subscribers.Set(float64(n))
}

// Handler exposes Registry over HTTP.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

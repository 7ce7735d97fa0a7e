package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fireform"

// Metrics holds the Prometheus counters, histograms, and gauges for form
// submissions and their delivery to sinks.
type Metrics struct {
	SubmissionsAccepted prometheus.Counter
	SubmissionsRejected *prometheus.CounterVec // labels: reason={validation,busy,input}

	SinkPublishes       *prometheus.CounterVec   // labels: sink, outcome={success,error}
	SinkPublishDuration *prometheus.HistogramVec // labels: sink
	PublishesInFlight   prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SubmissionsAccepted,
		m.SubmissionsRejected,
		m.SinkPublishes,
		m.SinkPublishDuration,
		m.PublishesInFlight,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SubmissionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_accepted_total",
			Help:      "Observations handed to the submission callback.",
		}),
		SubmissionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_rejected_total",
			Help:      "Submissions refused by reason.",
		}, []string{"reason"}),
		SinkPublishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_publishes_total",
			Help:      "Envelope publishes by sink and outcome.",
		}, []string{"sink", "outcome"}),
		SinkPublishDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sink_publish_duration_seconds",
			Help:      "Duration of a single sink publish.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"sink"}),
		PublishesInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "publishes_in_flight",
			Help:      "Submissions still being delivered to sinks.",
		}),
	}
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the filter module's Prometheus metrics.
type Metrics struct {
	Resolutions       *prometheus.CounterVec
	ResolutionLatency prometheus.Histogram
}

// New creates and registers the filter metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "daybound_filter_resolutions_total",
			Help: "Date range resolutions by outcome.",
		}, []string{"outcome"}),
		ResolutionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "daybound_filter_resolution_seconds",
			Help:    "Latency of date range resolution.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordResolution counts one resolution attempt and its latency.
func (m *Metrics) RecordResolution(outcome string, elapsed time.Duration) {
	if m != nil {
		m.Resolutions.WithLabelValues(outcome).Inc()
		m.ResolutionLatency.Observe(elapsed.Seconds())
	}
}

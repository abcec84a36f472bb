package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the resolution service.
type Metrics struct {
	ResolveTotal    *prometheus.CounterVec
	ResolveDuration prometheus.Histogram
	Documents       prometheus.Gauge
	ReloadsTotal    prometheus.Counter
}

// NewMetrics registers the service metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ResolveTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "steering",
			Name:      "resolve_requests_total",
			Help:      "Resolution requests by outcome.",
		}, []string{"outcome"}),
		ResolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "steering",
			Name:      "resolve_duration_seconds",
			Help:      "Resolution request duration.",
			Buckets:   prometheus.DefBuckets,
		}),
		Documents: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "steering",
			Name:      "documents",
			Help:      "Documents in the current registry snapshot.",
		}),
		ReloadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "steering",
			Name:      "reloads_total",
			Help:      "Registry reloads performed.",
		}),
	}
}

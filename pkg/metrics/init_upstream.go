package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initUpstreamMetrics() {
	r.UpstreamRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "talentgraph_upstream_requests_total",
			Help: "Requests to the Torre APIs",
		},
		[]string{"endpoint", "status"},
	)

	r.UpstreamRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "talentgraph_upstream_request_duration_seconds",
			Help:    "Torre API latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	r.UpstreamBreakerState = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "talentgraph_upstream_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
}

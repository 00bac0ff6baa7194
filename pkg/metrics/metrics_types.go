package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Search pipeline metrics
	SearchesTotal        *prometheus.CounterVec
	SearchDuration       prometheus.Histogram
	FallbacksTotal       *prometheus.CounterVec
	ProfilesFetchedTotal *prometheus.CounterVec
	ProfilesSkippedTotal prometheus.Counter

	// Upstream (Torre) metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	UpstreamBreakerState    prometheus.Gauge

	// Graph snapshot metrics
	GraphNodes     prometheus.Gauge
	GraphEdges     prometheus.Gauge
	EdgesInferred  prometheus.Histogram
	ActiveSessions prometheus.Gauge

	// Layout metrics
	SimulationStepsTotal prometheus.Counter
	SimulationAlpha      prometheus.Gauge
	LayoutDuration       prometheus.Histogram

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.Mutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initHTTPMetrics()
	r.initSearchMetrics()
	r.initUpstreamMetrics()
	r.initGraphMetrics()
	r.initLayoutMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

package metrics

import (
	"runtime"
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordSearch records a finished search. reason is empty unless the search
// fell back to the demo network.
func (r *Registry) RecordSearch(outcome, reason string, duration time.Duration) {
	r.SearchesTotal.WithLabelValues(outcome).Inc()
	r.SearchDuration.Observe(duration.Seconds())
	if reason != "" {
		r.FallbacksTotal.WithLabelValues(reason).Inc()
	}
}

// RecordProfileFetch records one profile fetch inside a batch.
func (r *Registry) RecordProfileFetch(status string) {
	r.ProfilesFetchedTotal.WithLabelValues(status).Inc()
	if status != "ok" {
		r.ProfilesSkippedTotal.Inc()
	}
}

// RecordUpstreamRequest records a call to the Torre APIs.
func (r *Registry) RecordUpstreamRequest(endpoint, status string, duration time.Duration) {
	r.UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	r.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// SetBreakerState records the circuit breaker state by name.
func (r *Registry) SetBreakerState(state string) {
	switch state {
	case "half-open":
		r.UpstreamBreakerState.Set(1)
	case "open":
		r.UpstreamBreakerState.Set(2)
	default:
		r.UpstreamBreakerState.Set(0)
	}
}

// RecordSnapshot records the size of a newly installed snapshot.
func (r *Registry) RecordSnapshot(nodes, edges int) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// RecordInference records how many edges a batch produced.
func (r *Registry) RecordInference(edges int) {
	r.EdgesInferred.Observe(float64(edges))
}

// ObserveSimulationStep is a per-step simulation observer.
func (r *Registry) ObserveSimulationStep(alpha float64) {
	r.SimulationStepsTotal.Inc()
	r.SimulationAlpha.Set(alpha)
}

// RecordLayout records a headless layout run.
func (r *Registry) RecordLayout(duration time.Duration) {
	r.LayoutDuration.Observe(duration.Seconds())
}

// UpdateSystemMetrics refreshes uptime, goroutine and memory gauges.
func (r *Registry) UpdateSystemMetrics(start time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UptimeSeconds.Set(time.Since(start).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}

// RecordResponseSize records the size of an HTTP response body.
func (r *Registry) RecordResponseSize(method, path string, size float64) {
	r.HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(size)
}

// IncHTTPRequestsInFlight marks a request as started.
func (r *Registry) IncHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Inc()
}

// DecHTTPRequestsInFlight marks a request as finished.
func (r *Registry) DecHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Dec()
}

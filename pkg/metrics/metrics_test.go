package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.SearchesTotal == nil {
		t.Error("SearchesTotal not initialized")
	}
	if r.UpstreamRequestsTotal == nil {
		t.Error("UpstreamRequestsTotal not initialized")
	}
	if r.GraphNodes == nil {
		t.Error("GraphNodes not initialized")
	}
	if r.SimulationStepsTotal == nil {
		t.Error("SimulationStepsTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("GET", "/api/network", "200", 100*time.Millisecond)
	r.RecordHTTPRequest("GET", "/api/network", "200", 120*time.Millisecond)
	r.RecordHTTPRequest("POST", "/api/search", "400", 5*time.Millisecond)

	counter, err := r.HTTPRequestsTotal.GetMetricWithLabelValues("GET", "/api/network", "200")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, counter); got != 2 {
		t.Errorf("Counter value = %v, want 2", got)
	}

	counter, err = r.HTTPRequestsTotal.GetMetricWithLabelValues("POST", "/api/search", "400")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, counter); got != 1 {
		t.Errorf("Counter value = %v, want 1", got)
	}
}

func TestRecordSearch(t *testing.T) {
	r := NewRegistry()

	r.RecordSearch("live", "", time.Second)
	r.RecordSearch("fallback", "insufficient_profiles", 2*time.Second)
	r.RecordSearch("fallback", "insufficient_profiles", time.Second)

	live, _ := r.SearchesTotal.GetMetricWithLabelValues("live")
	if got := counterValue(t, live); got != 1 {
		t.Errorf("live searches = %v, want 1", got)
	}

	fb, _ := r.FallbacksTotal.GetMetricWithLabelValues("insufficient_profiles")
	if got := counterValue(t, fb); got != 2 {
		t.Errorf("fallbacks = %v, want 2", got)
	}
}

func TestRecordProfileFetch(t *testing.T) {
	r := NewRegistry()

	r.RecordProfileFetch("ok")
	r.RecordProfileFetch("ok")
	r.RecordProfileFetch("error")
	r.RecordProfileFetch("skipped")

	ok, _ := r.ProfilesFetchedTotal.GetMetricWithLabelValues("ok")
	if got := counterValue(t, ok); got != 2 {
		t.Errorf("ok fetches = %v, want 2", got)
	}
	if got := counterValue(t, r.ProfilesSkippedTotal); got != 2 {
		t.Errorf("skipped profiles = %v, want 2", got)
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordUpstreamRequest("search", "200", 300*time.Millisecond)
	r.RecordUpstreamRequest("genome", "404", 50*time.Millisecond)

	c, err := r.UpstreamRequestsTotal.GetMetricWithLabelValues("genome", "404")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, c); got != 1 {
		t.Errorf("genome 404 = %v, want 1", got)
	}
}

func TestSetBreakerState(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		state    string
		expected float64
	}{
		{"open", 2},
		{"half-open", 1},
		{"closed", 0},
		{"unknown", 0},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			r.SetBreakerState(tt.state)
			if got := gaugeValue(t, r.UpstreamBreakerState); got != tt.expected {
				t.Errorf("breaker gauge = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGaugeMetrics(t *testing.T) {
	r := NewRegistry()

	r.RecordSnapshot(10, 17)
	r.ActiveSessions.Set(3)
	r.ObserveSimulationStep(0.42)
	r.ObserveSimulationStep(0.41)

	tests := []struct {
		name     string
		gauge    prometheus.Gauge
		expected float64
	}{
		{"GraphNodes", r.GraphNodes, 10},
		{"GraphEdges", r.GraphEdges, 17},
		{"ActiveSessions", r.ActiveSessions, 3},
		{"SimulationAlpha", r.SimulationAlpha, 0.41},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gaugeValue(t, tt.gauge); got != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}

	if got := counterValue(t, r.SimulationStepsTotal); got != 2 {
		t.Errorf("SimulationStepsTotal = %v, want 2", got)
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()

	r.UpdateSystemMetrics(time.Now().Add(-time.Minute))

	if got := gaugeValue(t, r.UptimeSeconds); got < 60 {
		t.Errorf("UptimeSeconds = %v, want >= 60", got)
	}
	if got := gaugeValue(t, r.GoRoutines); got < 1 {
		t.Errorf("GoRoutines = %v, want >= 1", got)
	}
	if got := gaugeValue(t, r.MemoryAllocBytes); got <= 0 {
		t.Errorf("MemoryAllocBytes = %v, want > 0", got)
	}
}

func TestMetricNamesArePrefixed(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("GET", "/health", "200", time.Millisecond)
	r.RecordSearch("live", "", time.Second)
	r.RecordUpstreamRequest("search", "200", time.Millisecond)
	r.RecordProfileFetch("ok")

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if len(families) == 0 {
		t.Fatal("Gather() returned no metric families")
	}

	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "talentgraph_") {
			t.Errorf("metric %q lacks talentgraph_ prefix", mf.GetName())
		}
	}
}

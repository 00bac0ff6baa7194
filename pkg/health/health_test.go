package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fixedMonitor(src Sources) *Monitor {
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewMonitor(src, "v1.2.3", started)
	m.now = func() time.Time { return started.Add(90 * time.Second) }
	return m
}

func sources(breaker string, active, capacity int) Sources {
	return Sources{
		Breaker:  func() string { return breaker },
		Sessions: func() int { return active },
		Capacity: capacity,
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name         string
		src          Sources
		wantStatus   Status
		wantFallback bool
		wantUp       Status
		wantSess     Status
	}{
		{
			name:       "upstream reachable with room",
			src:        sources(BreakerClosed, 3, 100),
			wantStatus: StatusHealthy,
			wantUp:     StatusHealthy,
			wantSess:   StatusHealthy,
		},
		{
			name:         "open breaker serves demo data",
			src:          sources(BreakerOpen, 3, 100),
			wantStatus:   StatusDegraded,
			wantFallback: true,
			wantUp:       StatusDegraded,
			wantSess:     StatusHealthy,
		},
		{
			name:         "half-open breaker",
			src:          sources(BreakerHalfOpen, 0, 100),
			wantStatus:   StatusDegraded,
			wantFallback: true,
			wantUp:       StatusDegraded,
			wantSess:     StatusHealthy,
		},
		{
			name:       "full session store",
			src:        sources(BreakerClosed, 100, 100),
			wantStatus: StatusDegraded,
			wantUp:     StatusHealthy,
			wantSess:   StatusDegraded,
		},
		{
			name:       "unbounded store is never full",
			src:        sources(BreakerClosed, 5000, 0),
			wantStatus: StatusHealthy,
			wantUp:     StatusHealthy,
			wantSess:   StatusHealthy,
		},
		{
			name:         "unknown breaker state",
			src:          sources("", 0, 10),
			wantStatus:   StatusDegraded,
			wantFallback: true,
			wantUp:       StatusDegraded,
			wantSess:     StatusHealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fixedMonitor(tt.src).Report()

			if r.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", r.Status, tt.wantStatus)
			}
			if r.Upstream == nil || r.Sessions == nil {
				t.Fatalf("report missing sections: %+v", r)
			}
			if r.Upstream.DemoFallback != tt.wantFallback {
				t.Errorf("demoFallback = %v, want %v", r.Upstream.DemoFallback, tt.wantFallback)
			}
			got := map[string]Status{}
			for _, c := range r.Conditions {
				got[c.Name] = c.Status
				if c.Message == "" {
					t.Errorf("condition %s has no message", c.Name)
				}
			}
			if got[ConditionUpstream] != tt.wantUp {
				t.Errorf("upstream = %s, want %s", got[ConditionUpstream], tt.wantUp)
			}
			if got[ConditionSessions] != tt.wantSess {
				t.Errorf("sessions = %s, want %s", got[ConditionSessions], tt.wantSess)
			}
		})
	}
}

func TestReportMetadata(t *testing.T) {
	r := fixedMonitor(sources(BreakerClosed, 2, 10)).Report()

	if r.Version != "v1.2.3" {
		t.Errorf("version = %q", r.Version)
	}
	if r.Uptime != 90 {
		t.Errorf("uptime = %v, want 90", r.Uptime)
	}
	if r.Sessions.Active != 2 || r.Sessions.Capacity != 10 {
		t.Errorf("sessions = %+v", r.Sessions)
	}
	if r.Upstream.Breaker != BreakerClosed {
		t.Errorf("breaker = %q", r.Upstream.Breaker)
	}
}

func TestReportWithoutSources(t *testing.T) {
	r := fixedMonitor(Sources{}).Report()

	if r.Upstream != nil {
		t.Error("upstream section without a breaker source")
	}
	if r.Status != StatusUnhealthy {
		t.Errorf("status = %s, want unhealthy without a session store", r.Status)
	}
}

func TestReadyIgnoresUpstream(t *testing.T) {
	r := fixedMonitor(sources(BreakerOpen, 1, 10)).Ready()

	if r.Status != StatusHealthy {
		t.Errorf("status = %s, want healthy", r.Status)
	}
	if r.Upstream != nil {
		t.Error("readiness should not report the upstream")
	}
	for _, c := range r.Conditions {
		if c.Name == ConditionUpstream {
			t.Error("readiness should not depend on the upstream")
		}
	}
}

func TestWorst(t *testing.T) {
	tests := []struct {
		in   []Status
		want Status
	}{
		{nil, StatusHealthy},
		{[]Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{[]Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{[]Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}
	for _, tt := range tests {
		cs := make([]Condition, len(tt.in))
		for i, s := range tt.in {
			cs[i] = Condition{Status: s}
		}
		if got := worst(cs); got != tt.want {
			t.Errorf("worst(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestHandlers(t *testing.T) {
	tests := []struct {
		name    string
		src     Sources
		handler func(*Monitor) http.HandlerFunc
		want    int
		status  Status
	}{
		{"health healthy", sources(BreakerClosed, 0, 10), (*Monitor).Handler, http.StatusOK, StatusHealthy},
		{"health degraded stays 200", sources(BreakerOpen, 0, 10), (*Monitor).Handler, http.StatusOK, StatusDegraded},
		{"health unhealthy", Sources{}, (*Monitor).Handler, http.StatusServiceUnavailable, StatusUnhealthy},
		{"ready", sources(BreakerOpen, 0, 10), (*Monitor).ReadinessHandler, http.StatusOK, StatusHealthy},
		{"not ready when full", sources(BreakerClosed, 10, 10), (*Monitor).ReadinessHandler, http.StatusServiceUnavailable, StatusDegraded},
		{"live", Sources{}, (*Monitor).LivenessHandler, http.StatusOK, StatusHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rr := httptest.NewRecorder()
			tt.handler(fixedMonitor(tt.src))(rr, req)

			if rr.Code != tt.want {
				t.Errorf("code = %d, want %d", rr.Code, tt.want)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			var body Report
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tt.status {
				t.Errorf("status = %s, want %s", body.Status, tt.status)
			}
		})
	}
}

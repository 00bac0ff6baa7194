// Package health reports liveness and readiness of the visualizer server.
// Searches fall back to the demo network when Torre is down, so upstream
// trouble degrades the server instead of failing it.
package health

import "time"

// Status is the outcome of one condition or of the whole report.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Circuit breaker states as the Torre client names them.
const (
	BreakerClosed   = "closed"
	BreakerHalfOpen = "half-open"
	BreakerOpen     = "open"
)

// Condition names.
const (
	ConditionUpstream = "upstream"
	ConditionSessions = "sessions"
)

// Condition is one named input to the overall status.
type Condition struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// UpstreamState describes the Torre dependency.
type UpstreamState struct {
	Breaker      string `json:"breaker"`
	DemoFallback bool   `json:"demoFallback"`
}

// SessionState is the session store occupancy.
type SessionState struct {
	Active   int `json:"active"`
	Capacity int `json:"capacity"`
}

// Report is the body of every health endpoint.
type Report struct {
	Status     Status         `json:"status"`
	Version    string         `json:"version,omitempty"`
	Uptime     float64        `json:"uptimeSeconds"`
	Timestamp  time.Time      `json:"timestamp"`
	Upstream   *UpstreamState `json:"upstream,omitempty"`
	Sessions   *SessionState  `json:"sessions,omitempty"`
	Conditions []Condition    `json:"conditions,omitempty"`
}

// Sources are the live readings sampled on every request.
type Sources struct {
	// Breaker returns the Torre circuit breaker state. Nil leaves the
	// upstream out of the report.
	Breaker  func() string
	// Sessions returns the number of live sessions.
	Sessions func() int
	// Capacity is the session store limit, 0 for unbounded.
	Capacity int
}

// Monitor assembles reports from Sources.
type Monitor struct {
	src     Sources
	version string
	started time.Time
	now     func() time.Time
}

// NewMonitor creates a monitor for a server started at started.
func NewMonitor(src Sources, version string, started time.Time) *Monitor {
	return &Monitor{
		src:     src,
		version: version,
		started: started,
		now:     time.Now,
	}
}

// Report covers the upstream and the session store.
func (m *Monitor) Report() Report {
	r := m.base()
	if m.src.Breaker != nil {
		state, c := upstreamCondition(m.src.Breaker())
		r.Upstream = &state
		r.Conditions = append(r.Conditions, c)
	}
	m.addSessions(&r)
	r.Status = worst(r.Conditions)
	return r
}

// Ready covers only what decides whether new visitors can be served. An open
// breaker does not, because the demo network still answers.
func (m *Monitor) Ready() Report {
	r := m.base()
	m.addSessions(&r)
	r.Status = worst(r.Conditions)
	return r
}

// Live reports that the process is serving requests.
func (m *Monitor) Live() Report {
	r := m.base()
	r.Status = StatusHealthy
	return r
}

func (m *Monitor) base() Report {
	now := m.now()
	return Report{
		Version:   m.version,
		Uptime:    now.Sub(m.started).Seconds(),
		Timestamp: now,
	}
}

func (m *Monitor) addSessions(r *Report) {
	if m.src.Sessions == nil {
		r.Conditions = append(r.Conditions, Condition{
			Name:    ConditionSessions,
			Status:  StatusUnhealthy,
			Message: "Session store not configured",
		})
		return
	}
	state := SessionState{Active: m.src.Sessions(), Capacity: m.src.Capacity}
	r.Sessions = &state
	r.Conditions = append(r.Conditions, sessionsCondition(state))
}

func upstreamCondition(breaker string) (UpstreamState, Condition) {
	state := UpstreamState{Breaker: breaker, DemoFallback: breaker != BreakerClosed}
	c := Condition{Name: ConditionUpstream, Status: StatusDegraded}
	switch breaker {
	case BreakerClosed:
		c.Status = StatusHealthy
		c.Message = "Torre reachable"
	case BreakerHalfOpen:
		c.Message = "Torre recovering, searches may fall back to demo data"
	case BreakerOpen:
		c.Message = "Torre unavailable, searches fall back to demo data"
	default:
		c.Message = "Torre breaker state unknown: " + breaker
	}
	return state, c
}

func sessionsCondition(s SessionState) Condition {
	c := Condition{Name: ConditionSessions, Status: StatusHealthy, Message: "Sessions within capacity"}
	if s.Capacity > 0 && s.Active >= s.Capacity {
		c.Status = StatusDegraded
		c.Message = "Session store full, idle sessions are being evicted"
	}
	return c
}

// worst returns the most severe status, healthy for none.
func worst(conditions []Condition) Status {
	status := StatusHealthy
	for _, c := range conditions {
		switch c.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}

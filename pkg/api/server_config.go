package api

import (
	"time"

	"github.com/dd0wney/talentgraph/pkg/api/middleware"
	"github.com/dd0wney/talentgraph/pkg/logging"
	"github.com/dd0wney/talentgraph/pkg/metrics"
)

// Option configures a Server.
type Option func(*Server)

// WithUpstream replaces the Torre client built from the configuration.
func WithUpstream(u Upstream) Option {
	return func(s *Server) { s.upstream = u }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics sets the metrics registry. The process-wide registry is used
// otherwise.
func WithMetrics(m *metrics.Registry) Option {
	return func(s *Server) { s.metricsRegistry = m }
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithSearchRateLimit overrides the per-client limit on search routes.
func WithSearchRateLimit(cfg *middleware.RateLimitConfig) Option {
	return func(s *Server) { s.searchLimit = cfg }
}

// WithMaintenanceInterval sets how often system metrics are refreshed and
// idle sessions swept.
func WithMaintenanceInterval(d time.Duration) Option {
	return func(s *Server) { s.maintenanceInterval = d }
}

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/dd0wney/talentgraph/pkg/api/middleware"
	"github.com/dd0wney/talentgraph/pkg/config"
	"github.com/dd0wney/talentgraph/pkg/graphql"
	"github.com/dd0wney/talentgraph/pkg/health"
	"github.com/dd0wney/talentgraph/pkg/logging"
	"github.com/dd0wney/talentgraph/pkg/metrics"
	"github.com/dd0wney/talentgraph/pkg/session"
)

// DefaultMaintenanceInterval is how often system metrics are refreshed and
// idle sessions swept.
const DefaultMaintenanceInterval = 10 * time.Second

// NewServer creates a new API server. A nil cfg uses config.Default().
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		cfg:                 cfg,
		startTime:           time.Now(),
		version:             "dev",
		maintenanceInterval: DefaultMaintenanceInterval,
		metricsStopCh:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrDefault(s.logger).With(logging.Component("api"))
	if s.metricsRegistry == nil {
		s.metricsRegistry = metrics.DefaultRegistry()
	}
	if s.upstream == nil {
		s.upstream = cfg.Torre.NewTorreClient(s.logger, s.metricsRegistry)
	}
	if s.searchLimit == nil {
		s.searchLimit = middleware.DefaultRateLimitConfig()
	}
	s.searchLimiter = middleware.NewRateLimiter(s.searchLimit)

	s.sessions = session.NewStore(s.newSession, cfg.Sessions.MaxSessions, cfg.Sessions.IdleTimeout, s.metricsRegistry)

	schema, err := graphql.NewSchema(func(ctx context.Context) *session.Session {
		return s.sessions.Get(session.MustIDFromContext(ctx))
	})
	if err != nil {
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}
	s.graphqlHandler = graphql.NewGraphQLHandler(schema, graphql.DefaultMaxDepth)

	s.health = health.NewMonitor(health.Sources{
		Breaker:  s.upstream.BreakerState,
		Sessions: s.sessions.Len,
		Capacity: cfg.Sessions.MaxSessions,
	}, s.version, s.startTime)

	return s, nil
}

// newSession is the session store factory.
func (s *Server) newSession(id string) *session.Session {
	return session.New(s.upstream,
		session.WithID(id),
		session.WithGate(session.NewIntervalGate(s.cfg.Torre.FetchInterval)),
		session.WithLogger(s.logger),
		session.WithMetrics(s.metricsRegistry),
	)
}

// Sessions exposes the session store.
func (s *Server) Sessions() *session.Store {
	return s.sessions
}

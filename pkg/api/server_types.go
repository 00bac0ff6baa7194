package api

import (
	"context"
	"sync"
	"time"

	"github.com/dd0wney/talentgraph/pkg/api/middleware"
	"github.com/dd0wney/talentgraph/pkg/config"
	"github.com/dd0wney/talentgraph/pkg/graphql"
	"github.com/dd0wney/talentgraph/pkg/health"
	"github.com/dd0wney/talentgraph/pkg/logging"
	"github.com/dd0wney/talentgraph/pkg/metrics"
	"github.com/dd0wney/talentgraph/pkg/session"
	"github.com/dd0wney/talentgraph/pkg/torre"
)

// Upstream is the part of the Torre client the server needs: decoded calls
// for the search pipeline and raw calls for the proxy routes.
type Upstream interface {
	session.Upstream
	SearchRaw(ctx context.Context, req torre.SearchRequest) ([]byte, error)
	GenomeRaw(ctx context.Context, username string) ([]byte, error)
	BreakerState() string
}

// Server represents the HTTP API server
type Server struct {
	cfg             *config.Config
	upstream        Upstream
	sessions        *session.Store
	graphqlHandler  *graphql.GraphQLHandler
	health          *health.Monitor
	metricsRegistry *metrics.Registry
	logger          logging.Logger
	searchLimiter   *middleware.RateLimiter
	searchLimit     *middleware.RateLimitConfig
	startTime       time.Time
	version         string

	maintenanceInterval time.Duration
	metricsStopCh       chan struct{}
	metricsWg           sync.WaitGroup
	stopOnce            sync.Once
}

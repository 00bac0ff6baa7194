package config

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/dd0wney/talentgraph/pkg/logging"
	"github.com/dd0wney/talentgraph/pkg/metrics"
	"github.com/dd0wney/talentgraph/pkg/torre"
)

// NewTorreClient builds the upstream client described by t.
func (t TorreConfig) NewTorreClient(logger logging.Logger, m *metrics.Registry) *torre.Client {
	return torre.NewClient(
		torre.WithHTTPClient(&http.Client{Timeout: t.Timeout}),
		torre.WithSearchURL(t.SearchURL),
		torre.WithBioURL(t.BioURL),
		torre.WithRateLimit(rate.Limit(t.RateLimit), t.Burst),
		torre.WithBreaker(torre.BreakerSettings{
			ConsecutiveFailures: uint32(t.BreakerFailures),
			OpenTimeout:         t.BreakerTimeout,
			HalfOpenRequests:    1,
		}),
		torre.WithLogger(logger),
		torre.WithMetrics(m),
	)
}

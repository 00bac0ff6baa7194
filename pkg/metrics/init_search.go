package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSearchMetrics() {
	r.SearchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "talentgraph_searches_total",
			Help: "Total number of network searches",
		},
		[]string{"outcome"}, // live, fallback, superseded, error
	)

	r.SearchDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "talentgraph_search_duration_seconds",
			Help:    "End-to-end duration of a network search in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
		},
	)

	r.FallbacksTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "talentgraph_fallbacks_total",
			Help: "Searches that fell back to the demo network",
		},
		[]string{"reason"},
	)

	r.ProfilesFetchedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "talentgraph_profiles_fetched_total",
			Help: "Profile fetches by result",
		},
		[]string{"status"}, // ok, skipped, error
	)

	r.ProfilesSkippedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "talentgraph_profiles_skipped_total",
			Help: "Profiles left out of a batch",
		},
	)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "talentgraph_graph_nodes",
			Help: "Nodes in the most recently installed snapshot",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "talentgraph_graph_edges",
			Help: "Edges in the most recently installed snapshot",
		},
	)

	r.EdgesInferred = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "talentgraph_edges_inferred",
			Help:    "Edges inferred per search batch",
			Buckets: []float64{0, 1, 5, 10, 20, 40, 66},
		},
	)

	r.ActiveSessions = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "talentgraph_active_sessions",
			Help: "Sessions held by the server",
		},
	)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLayoutMetrics() {
	r.SimulationStepsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "talentgraph_simulation_steps_total",
			Help: "Force simulation steps taken",
		},
	)

	r.SimulationAlpha = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "talentgraph_simulation_alpha",
			Help: "Temperature of the most recently stepped simulation",
		},
	)

	r.LayoutDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "talentgraph_layout_duration_seconds",
			Help:    "Duration of headless layout runs in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)
}

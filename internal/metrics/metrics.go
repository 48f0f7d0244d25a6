// Package metrics provides Prometheus metrics for shoplisl.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the service's metrics. A nil *Collector records nothing,
// so components can be built without metrics in tests and tools.
type Collector struct {
	// Operations counts consistency service operations by outcome.
	Operations *prometheus.CounterVec
	// SolverLoss observes the final loss of each color filter solve.
	SolverLoss prometheus.Histogram
	// SolveDuration measures color filter solves in seconds.
	SolveDuration prometheus.Histogram
	// FilterCache counts filter cache lookups per tier.
	FilterCache *prometheus.CounterVec
	// WSClients tracks connected websocket clients.
	WSClients prometheus.Gauge
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		Operations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "shoplisl",
				Name:      "operations_total",
				Help:      "Total number of shopping operations",
			},
			[]string{"op", "result"},
		),
		SolverLoss: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "shoplisl",
				Name:      "solver_loss",
				Help:      "Final loss of color filter solves",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 15, 25, 50},
			},
		),
		SolveDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "shoplisl",
				Name:      "solve_duration_seconds",
				Help:      "Duration of color filter solves in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		FilterCache: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "shoplisl",
				Name:      "filter_cache_total",
				Help:      "Filter cache lookups by tier and result",
			},
			[]string{"tier", "result"},
		),
		WSClients: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "shoplisl",
				Name:      "ws_clients",
				Help:      "Number of connected websocket clients",
			},
		),
	}
}

// RecordOperation records one service operation. result is "ok" or an
// error class such as "duplicate" or "not_found".
func (c *Collector) RecordOperation(op, result string) {
	if c == nil {
		return
	}
	c.Operations.WithLabelValues(op, result).Inc()
}

// RecordSolve records a finished color filter solve.
func (c *Collector) RecordSolve(loss, seconds float64) {
	if c == nil {
		return
	}
	c.SolverLoss.Observe(loss)
	c.SolveDuration.Observe(seconds)
}

// RecordCache records a cache lookup on tier ("local" or "redis").
func (c *Collector) RecordCache(tier string, hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.FilterCache.WithLabelValues(tier, result).Inc()
}

// SetWSClients sets the websocket client gauge.
func (c *Collector) SetWSClients(n int) {
	if c == nil {
		return
	}
	c.WSClients.Set(float64(n))
}

// Package metrics exposes Prometheus instruments for the query service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Query operations.
const (
	OpPathsWithFollowers = "paths_with_followers"
	OpCurrentHolders     = "current_holders"
	OpTitlesHeldBy       = "titles_held_by"
)

// Metrics groups the service instruments on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	queries      *prometheus.CounterVec
	pathsPerWalk prometheus.Histogram
	reloads      *prometheus.CounterVec
}

// New registers the instruments on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "careergraph_queries_total",
			Help: "Queries served by operation and outcome",
		}, []string{"operation", "outcome"}),
		pathsPerWalk: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "careergraph_paths_per_enumeration",
			Help:    "Number of paths produced per enumeration",
			Buckets: []float64{0, 1, 2, 5, 10, 50, 100, 1000},
		}),
		reloads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "careergraph_dataset_reloads_total",
			Help: "Dataset reload attempts by result",
		}, []string{"result"}),
	}
}

// ObserveQuery counts a query; n is the size of its result.
func (m *Metrics) ObserveQuery(op string, n int) {
	if m == nil {
		return
	}
	outcome := "hit"
	if n == 0 {
		outcome = "empty"
	}
	m.queries.WithLabelValues(op, outcome).Inc()
	if op == OpPathsWithFollowers {
		m.pathsPerWalk.Observe(float64(n))
	}
}

// ObserveReload counts a reload attempt.
func (m *Metrics) ObserveReload(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.reloads.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

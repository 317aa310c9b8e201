// Package metrics provides Prometheus metrics for pick-list generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricPickListsGenerated = "picklist_generated_total"
	MetricTeamsRanked        = "picklist_teams_ranked_total"
	MetricGenerationDuration = "picklist_generation_duration_seconds"
	MetricWeightWarnings     = "picklist_weight_warnings_total"
	MetricHTTPRequests       = "picklist_http_requests_total"
)

// Metrics contains Prometheus metrics for ranking operations.
// All operations are thread-safe.
type Metrics struct {
	registry           *prometheus.Registry
	pickListsGenerated *prometheus.CounterVec
	teamsRanked        prometheus.Counter
	generationDuration *prometheus.HistogramVec
	weightWarnings     prometheus.Counter
	httpRequests       *prometheus.CounterVec
}

// New creates a Metrics instance registered on its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pickListsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricPickListsGenerated,
				Help: "Total number of generated pick lists by strategy",
			},
			[]string{"strategy"},
		),
		teamsRanked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricTeamsRanked,
			Help: "Total number of teams ranked across all pick lists",
		}),
		generationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricGenerationDuration,
				Help:    "Histogram of pick-list generation duration in seconds by strategy",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"strategy"},
		),
		weightWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricWeightWarnings,
			Help: "Total number of advisory weight warnings attached to pick lists",
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricHTTPRequests,
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
	}
	m.registry.MustRegister(m.Collectors()...)
	return m
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObservePickList records one generated pick list.
func (m *Metrics) ObservePickList(strategy string, teams, warnings int, elapsed time.Duration) {
	m.pickListsGenerated.WithLabelValues(strategy).Inc()
	m.teamsRanked.Add(float64(teams))
	m.weightWarnings.Add(float64(warnings))
	m.generationDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
}

// IncHTTPRequests increments the request counter of a route.
func (m *Metrics) IncHTTPRequests(route, code string) {
	m.httpRequests.WithLabelValues(route, code).Inc()
}

// Collectors returns all Prometheus collectors for testing.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.pickListsGenerated,
		m.teamsRanked,
		m.generationDuration,
		m.weightWarnings,
		m.httpRequests,
	}
}

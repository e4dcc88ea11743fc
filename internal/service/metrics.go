package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcomes used as the "outcome" label.
const (
	outcomeOK             = "ok"
	outcomeNoRoute        = "no_route"
	outcomeInvalidInput   = "invalid_input"
	outcomeBudgetExceeded = "budget_exceeded"
	outcomeError          = "error"
)

// Metrics holds the Prometheus collectors for route queries.
type Metrics struct {
	queries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	routes   *prometheus.HistogramVec
}

// NewMetrics registers the route query collectors with reg. A nil reg yields
// working but unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trains_route_queries_total",
			Help: "Route queries by operation and outcome",
		}, []string{"operation", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trains_route_query_duration_seconds",
			Help:    "Route query duration",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}, []string{"operation"}),
		routes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trains_routes_returned",
			Help:    "Routes returned per enumeration query",
			Buckets: []float64{0, 1, 2, 5, 10, 50, 100, 1000},
		}, []string{"operation"}),
	}
}

package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
	"github.com/MarianaMaksimiv/ACME-Train/internal/logging"
	"github.com/MarianaMaksimiv/ACME-Train/internal/network"
	"github.com/MarianaMaksimiv/ACME-Train/internal/routing"
)

func newTestService(t *testing.T, opts ...routing.Option) (*RouteService, *Metrics) {
	t.Helper()
	n, err := routing.New(network.Reference(), opts...)
	require.NoError(t, err)
	metrics := NewMetrics(prometheus.NewRegistry())
	return NewRouteService(n, logging.Discard(), metrics), metrics
}

func TestRouteService_Distance(t *testing.T) {
	svc, metrics := newTestService(t)
	ctx := context.Background()

	d, err := svc.Distance(ctx, domain.Path{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, domain.Found(9), d)

	d, err = svc.Distance(ctx, domain.Path{"A", "E", "D"})
	require.NoError(t, err)
	assert.Equal(t, domain.NoSuchRoute, d)

	_, err = svc.Distance(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.queries.WithLabelValues(OpDistance, outcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.queries.WithLabelValues(OpDistance, outcomeNoRoute)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.queries.WithLabelValues(OpDistance, outcomeInvalidInput)))
}

func TestRouteService_Enumerations(t *testing.T) {
	svc, metrics := newTestService(t)
	ctx := context.Background()

	routes, err := svc.RoutesWithMaxStops(ctx, "C", "C", 3)
	require.NoError(t, err)
	assert.Len(t, routes, 2)

	routes, err = svc.RoutesWithExactStops(ctx, "A", "C", 4)
	require.NoError(t, err)
	assert.Len(t, routes, 3)

	routes, err = svc.RoutesWithExactStops(ctx, "A", "A", 2)
	require.NoError(t, err)
	assert.Empty(t, routes)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.queries.WithLabelValues(OpMaxStops, outcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.queries.WithLabelValues(OpExactStops, outcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.queries.WithLabelValues(OpExactStops, outcomeNoRoute)))
}

func TestRouteService_ShortestRoute(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	route, err := svc.ShortestRoute(ctx, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, domain.Found(9), route.Distance)
	assert.Equal(t, domain.Path{"A", "B", "C"}, route.Path)

	route, err = svc.ShortestRoute(ctx, "C", "A")
	require.NoError(t, err)
	assert.False(t, route.Distance.Exists())
}

func TestRouteService_RoutesWithinDistance(t *testing.T) {
	svc, _ := newTestService(t)

	routes, err := svc.RoutesWithinDistance(context.Background(), "C", "C", 30)
	require.NoError(t, err)
	require.Len(t, routes, 7)

	assert.Equal(t, domain.Path{"C", "D", "C"}, routes[0].Path)
	assert.Equal(t, domain.Found(16), routes[0].Distance)
	for _, r := range routes {
		total, ok := r.Distance.Value()
		require.True(t, ok)
		assert.Less(t, total, 30)
	}

	_, err = svc.RoutesWithinDistance(context.Background(), "C", "C", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRouteService_SearchBudget(t *testing.T) {
	svc, metrics := newTestService(t, routing.WithSearchBudget(5))

	_, err := svc.RoutesWithinDistance(context.Background(), "C", "C", 30)
	assert.ErrorIs(t, err, domain.ErrSearchBudgetExceeded)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.queries.WithLabelValues(OpWithinDistance, outcomeBudgetExceeded)))
}

func TestRouteService_CanceledContext(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.RoutesWithMaxStops(ctx, "C", "C", 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRouteService_Network(t *testing.T) {
	svc, _ := newTestService(t)

	summary := svc.Network()
	assert.Equal(t, []domain.NodeID{"A", "B", "C", "D", "E"}, summary.Towns)
	assert.Len(t, summary.Edges, 9)
	assert.Equal(t, network.Fingerprint(network.Reference()), summary.Fingerprint)
}

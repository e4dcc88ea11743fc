package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
	"github.com/MarianaMaksimiv/ACME-Train/internal/network"
	"github.com/MarianaMaksimiv/ACME-Train/internal/routing"
)

// Operation names, shared by logs and metrics.
const (
	OpDistance       = "distance"
	OpMaxStops       = "max_stops"
	OpExactStops     = "exact_stops"
	OpShortest       = "shortest"
	OpWithinDistance = "within_distance"
)

// NetworkSummary describes the loaded network.
type NetworkSummary struct {
	Towns       []domain.NodeID
	Edges       []domain.Edge
	Fingerprint string
}

// RouteService exposes the routing engine to the transport layer, adding
// logging and metrics around every query.
type RouteService struct {
	network     *routing.Network
	fingerprint string
	logger      *slog.Logger
	metrics     *Metrics
	nowFn       func() time.Time
}

// NewRouteService wraps a built network. A nil metrics value records into
// unregistered collectors.
func NewRouteService(n *routing.Network, logger *slog.Logger, metrics *Metrics) *RouteService {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &RouteService{
		network:     n,
		fingerprint: network.Fingerprint(n.Edges()),
		logger:      logger,
		metrics:     metrics,
		nowFn:       time.Now,
	}
}

// Network summarises the towns and edges the service answers queries over.
func (s *RouteService) Network() NetworkSummary {
	return NetworkSummary{
		Towns:       s.network.Towns(),
		Edges:       s.network.Edges(),
		Fingerprint: s.fingerprint,
	}
}

// Distance returns the total distance along path, or NoSuchRoute.
func (s *RouteService) Distance(ctx context.Context, path domain.Path) (domain.Distance, error) {
	if err := ctx.Err(); err != nil {
		return domain.NoSuchRoute, err
	}
	started := s.nowFn()
	d, err := s.network.Distance(path)
	s.observe(ctx, OpDistance, started, err, !d.Exists(), "path", path.String(), "distance", d.String())
	return d, err
}

// RoutesWithMaxStops lists walks from start to end with at most maxStops edges.
func (s *RouteService) RoutesWithMaxStops(ctx context.Context, start, end domain.NodeID, maxStops int) ([]domain.Path, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started := s.nowFn()
	routes, err := s.network.RoutesWithMaxStops(start, end, maxStops)
	s.observeRoutes(ctx, OpMaxStops, started, err, len(routes), "start", start, "end", end, "maxStops", maxStops)
	return routes, err
}

// RoutesWithExactStops lists walks from start to end with exactly exactStops edges.
func (s *RouteService) RoutesWithExactStops(ctx context.Context, start, end domain.NodeID, exactStops int) ([]domain.Path, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started := s.nowFn()
	routes, err := s.network.RoutesWithExactStops(start, end, exactStops)
	s.observeRoutes(ctx, OpExactStops, started, err, len(routes), "start", start, "end", end, "exactStops", exactStops)
	return routes, err
}

// ShortestRoute finds the shortest walk from start to end. The returned route
// has a NoSuchRoute distance and no path when none exists.
func (s *RouteService) ShortestRoute(ctx context.Context, start, end domain.NodeID) (domain.Route, error) {
	if err := ctx.Err(); err != nil {
		return domain.Route{}, err
	}
	started := s.nowFn()
	route, err := s.network.ShortestPath(start, end)
	s.observe(ctx, OpShortest, started, err, !route.Distance.Exists(), "start", start, "end", end, "distance", route.Distance.String())
	return route, err
}

// RoutesWithinDistance lists walks from start to end shorter than maxDistance,
// each with its total distance.
func (s *RouteService) RoutesWithinDistance(ctx context.Context, start, end domain.NodeID, maxDistance int) ([]domain.Route, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started := s.nowFn()
	paths, err := s.network.RoutesWithinDistance(start, end, maxDistance)
	if err != nil {
		s.observeRoutes(ctx, OpWithinDistance, started, err, 0, "start", start, "end", end, "maxDistance", maxDistance)
		return nil, err
	}

	routes := make([]domain.Route, 0, len(paths))
	for _, p := range paths {
		d, err := s.network.Distance(p)
		if err != nil {
			s.observeRoutes(ctx, OpWithinDistance, started, err, 0, "start", start, "end", end, "maxDistance", maxDistance)
			return nil, err
		}
		routes = append(routes, domain.Route{Path: p, Distance: d})
	}
	s.observeRoutes(ctx, OpWithinDistance, started, nil, len(routes), "start", start, "end", end, "maxDistance", maxDistance)
	return routes, nil
}

func (s *RouteService) observeRoutes(ctx context.Context, op string, started time.Time, err error, count int, attrs ...any) {
	if err == nil {
		s.metrics.routes.WithLabelValues(op).Observe(float64(count))
	}
	s.observe(ctx, op, started, err, count == 0, append(attrs, "routes", count)...)
}

func (s *RouteService) observe(ctx context.Context, op string, started time.Time, err error, empty bool, attrs ...any) {
	elapsed := s.nowFn().Sub(started)
	outcome := classify(err, empty)

	s.metrics.queries.WithLabelValues(op, outcome).Inc()
	s.metrics.duration.WithLabelValues(op).Observe(elapsed.Seconds())

	attrs = append(attrs, "operation", op, "outcome", outcome, "duration", elapsed)
	switch outcome {
	case outcomeInvalidInput:
		s.logger.DebugContext(ctx, "route query rejected", append(attrs, "error", err)...)
	case outcomeBudgetExceeded:
		s.logger.WarnContext(ctx, "route query exceeded search budget", append(attrs, "error", err)...)
	case outcomeError:
		s.logger.ErrorContext(ctx, "route query failed", append(attrs, "error", err)...)
	default:
		s.logger.DebugContext(ctx, "route query completed", attrs...)
	}
}

func classify(err error, empty bool) string {
	switch {
	case err == nil && empty:
		return outcomeNoRoute
	case err == nil:
		return outcomeOK
	case errors.Is(err, domain.ErrInvalidInput):
		return outcomeInvalidInput
	case errors.Is(err, domain.ErrSearchBudgetExceeded):
		return outcomeBudgetExceeded
	default:
		return outcomeError
	}
}

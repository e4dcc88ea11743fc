package service

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
)

// Scenario is a named query with a known answer on the reference network.
type Scenario struct {
	ID          int
	Description string
	Expected    string
	Run         func(ctx context.Context, svc *RouteService) (string, error)
}

// ScenarioResult is the outcome of one Scenario.
type ScenarioResult struct {
	ID          int
	Description string
	Expected    string
	Actual      string
	Passed      bool
	Err         error
}

// ScenarioRunner evaluates scenarios concurrently against a RouteService.
type ScenarioRunner struct {
	service *RouteService
	workers int
}

// NewScenarioRunner creates a runner evaluating at most workers scenarios at once.
func NewScenarioRunner(svc *RouteService, workers int) *ScenarioRunner {
	if workers <= 0 {
		workers = 4
	}
	return &ScenarioRunner{service: svc, workers: workers}
}

// Run evaluates every scenario and returns results in input order. Scenario
// failures are reported per result; only cancellation aborts the run.
func (r *ScenarioRunner) Run(ctx context.Context, scenarios []Scenario) ([]ScenarioResult, error) {
	results := make([]ScenarioResult, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			actual, err := sc.Run(gctx, r.service)
			results[i] = ScenarioResult{
				ID:          sc.ID,
				Description: sc.Description,
				Expected:    sc.Expected,
				Actual:      actual,
				Passed:      err == nil && actual == sc.Expected,
				Err:         err,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ReferenceScenarios are the classic checks for the reference network.
func ReferenceScenarios() []Scenario {
	return []Scenario{
		distanceScenario(1, "A", "B", "C", "9"),
		distanceScenario(2, "A", "D", "5"),
		distanceScenario(3, "A", "D", "C", "13"),
		distanceScenario(4, "A", "E", "B", "C", "D", "22"),
		distanceScenario(5, "A", "E", "D", domain.NoSuchRouteLabel),
		{
			ID:          6,
			Description: "Routes from C to C with at most 3 stops",
			Expected:    "2 routes",
			Run: func(ctx context.Context, svc *RouteService) (string, error) {
				routes, err := svc.RoutesWithMaxStops(ctx, "C", "C", 3)
				return countRoutes(len(routes)), err
			},
		},
		{
			ID:          7,
			Description: "Routes from A to C with exactly 4 stops",
			Expected:    "3 routes",
			Run: func(ctx context.Context, svc *RouteService) (string, error) {
				routes, err := svc.RoutesWithExactStops(ctx, "A", "C", 4)
				return countRoutes(len(routes)), err
			},
		},
		shortestScenario(8, "A", "C", "9"),
		shortestScenario(9, "B", "B", "9"),
		{
			ID:          10,
			Description: "Routes from C to C with distance less than 30",
			Expected:    "7 routes",
			Run: func(ctx context.Context, svc *RouteService) (string, error) {
				routes, err := svc.RoutesWithinDistance(ctx, "C", "C", 30)
				return countRoutes(len(routes)), err
			},
		},
	}
}

// distanceScenario takes the towns followed by the expected answer.
func distanceScenario(id int, args ...string) Scenario {
	towns, expected := args[:len(args)-1], args[len(args)-1]
	path := make(domain.Path, len(towns))
	for i, t := range towns {
		path[i] = domain.NodeID(t)
	}
	return Scenario{
		ID:          id,
		Description: fmt.Sprintf("Distance of route %s", path),
		Expected:    expected,
		Run: func(ctx context.Context, svc *RouteService) (string, error) {
			d, err := svc.Distance(ctx, path)
			return d.String(), err
		},
	}
}

func shortestScenario(id int, start, end domain.NodeID, expected string) Scenario {
	return Scenario{
		ID:          id,
		Description: fmt.Sprintf("Shortest route from %s to %s", start, end),
		Expected:    expected,
		Run: func(ctx context.Context, svc *RouteService) (string, error) {
			route, err := svc.ShortestRoute(ctx, start, end)
			return route.Distance.String(), err
		},
	}
}

func countRoutes(n int) string {
	if n == 1 {
		return "1 route"
	}
	return strconv.Itoa(n) + " routes"
}

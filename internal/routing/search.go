package routing

import (
	"fmt"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
)

// frame is one partial walk on the explicit DFS stack. Each frame owns its path.
type frame struct {
	node     domain.NodeID
	path     domain.Path
	stops    int
	distance int
}

// walkRule decides which walks are reported and which are extended further.
type walkRule struct {
	accept func(f frame) bool
	extend func(f frame, nb neighbor) bool
}

// RoutesWithMaxStops returns every walk from start to end with between one and
// maxStops edges, in depth-first order.
func (n *Network) RoutesWithMaxStops(start, end domain.NodeID, maxStops int) ([]domain.Path, error) {
	if err := validateEndpoints(start, end); err != nil {
		return nil, err
	}
	if maxStops < 0 {
		return nil, domain.InvalidInput("maxStops", "must not be negative")
	}
	return n.enumerate(start, walkRule{
		accept: func(f frame) bool {
			return f.node == end && f.stops > 0
		},
		extend: func(f frame, _ neighbor) bool {
			return f.stops < maxStops
		},
	})
}

// RoutesWithExactStops returns every walk from start to end with exactly
// exactStops edges, in depth-first order.
func (n *Network) RoutesWithExactStops(start, end domain.NodeID, exactStops int) ([]domain.Path, error) {
	if err := validateEndpoints(start, end); err != nil {
		return nil, err
	}
	if exactStops < 0 {
		return nil, domain.InvalidInput("exactStops", "must not be negative")
	}
	return n.enumerate(start, walkRule{
		accept: func(f frame) bool {
			return f.stops == exactStops && f.node == end
		},
		extend: func(f frame, _ neighbor) bool {
			return f.stops < exactStops
		},
	})
}

// RoutesWithinDistance returns every walk from start to end with at least one
// edge whose total distance is strictly below maxDistance.
func (n *Network) RoutesWithinDistance(start, end domain.NodeID, maxDistance int) ([]domain.Path, error) {
	if err := validateEndpoints(start, end); err != nil {
		return nil, err
	}
	if maxDistance < 1 {
		return nil, domain.InvalidInput("maxDistance", "must be at least 1")
	}
	return n.enumerate(start, walkRule{
		accept: func(f frame) bool {
			return f.node == end && f.stops > 0
		},
		extend: func(f frame, nb neighbor) bool {
			return f.distance+nb.weight < maxDistance
		},
	})
}

// enumerate walks the network depth-first from start. Neighbours are pushed in
// reverse so they are popped in lexicographic order, matching a recursive DFS.
func (n *Network) enumerate(start domain.NodeID, rule walkRule) ([]domain.Path, error) {
	routes := []domain.Path{}
	stack := []frame{{node: start, path: domain.Path{start}}}
	explored := 0

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		explored++
		if n.budget > 0 && explored > n.budget {
			return nil, fmt.Errorf("%w: more than %d partial walks from %s", domain.ErrSearchBudgetExceeded, n.budget, start)
		}

		if rule.accept(f) {
			routes = append(routes, f.path)
		}

		next := n.adjacency[f.node]
		for i := len(next) - 1; i >= 0; i-- {
			nb := next[i]
			if !rule.extend(f, nb) {
				continue
			}
			stack = append(stack, frame{
				node:     nb.to,
				path:     f.path.Extend(nb.to),
				stops:    f.stops + 1,
				distance: f.distance + nb.weight,
			})
		}
	}
	return routes, nil
}

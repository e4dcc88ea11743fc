// Package routing implements the query engine over the rail network: path
// distances, stop- and distance-bounded route enumeration, and shortest routes.
//
// A Network is immutable once built. Every query allocates its own scratch
// state, so a single Network may be shared by any number of goroutines.
package routing

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
)

// Network is a read-only directed weighted graph of towns.
type Network struct {
	adjacency map[domain.NodeID][]neighbor
	towns     []domain.NodeID
	edges     []domain.Edge
	budget    int
}

type neighbor struct {
	to     domain.NodeID
	weight int
}

// Option customises a Network at construction time.
type Option func(*Network)

// WithSearchBudget caps the number of partial walks a single enumeration may
// explore. Zero or a negative value means unbounded.
func WithSearchBudget(maxExplored int) Option {
	return func(n *Network) {
		if maxExplored < 0 {
			maxExplored = 0
		}
		n.budget = maxExplored
	}
}

// New builds a Network from a list of directed edges. Town identifiers must be
// non-empty, weights strictly positive, and each from→to pair may appear once.
func New(edges []domain.Edge, opts ...Option) (*Network, error) {
	n := &Network{
		adjacency: make(map[domain.NodeID][]neighbor),
	}
	for _, opt := range opts {
		opt(n)
	}

	seen := make(map[domain.Edge]struct{}, len(edges))
	towns := make(map[domain.NodeID]struct{})
	for i, e := range edges {
		field := fmt.Sprintf("edges[%d]", i)
		if e.From == "" || e.To == "" {
			return nil, domain.InvalidInput(field, "must name both towns")
		}
		if e.Weight <= 0 {
			return nil, domain.InvalidInput(field, fmt.Sprintf("distance %d must be positive", e.Weight))
		}
		key := domain.Edge{From: e.From, To: e.To}
		if _, dup := seen[key]; dup {
			return nil, domain.InvalidInput(field, fmt.Sprintf("duplicates route %s→%s", e.From, e.To))
		}
		seen[key] = struct{}{}

		n.adjacency[e.From] = append(n.adjacency[e.From], neighbor{to: e.To, weight: e.Weight})
		n.edges = append(n.edges, e)
		towns[e.From] = struct{}{}
		towns[e.To] = struct{}{}
	}

	for from := range n.adjacency {
		slices.SortFunc(n.adjacency[from], func(a, b neighbor) int {
			return cmp.Compare(a.to, b.to)
		})
	}
	slices.SortFunc(n.edges, compareEdges)

	n.towns = make([]domain.NodeID, 0, len(towns))
	for id := range towns {
		n.towns = append(n.towns, id)
	}
	slices.Sort(n.towns)

	return n, nil
}

// Towns returns every town that appears in the network, sorted.
func (n *Network) Towns() []domain.NodeID {
	return slices.Clone(n.towns)
}

// Edges returns every edge, sorted by origin then destination.
func (n *Network) Edges() []domain.Edge {
	return slices.Clone(n.edges)
}

// HasTown reports whether id appears as an origin or destination.
func (n *Network) HasTown(id domain.NodeID) bool {
	_, ok := slices.BinarySearch(n.towns, id)
	return ok
}

// SearchBudget returns the configured exploration cap, zero when unbounded.
func (n *Network) SearchBudget() int {
	return n.budget
}

func (n *Network) weight(from, to domain.NodeID) (int, bool) {
	for _, nb := range n.adjacency[from] {
		if nb.to == to {
			return nb.weight, true
		}
	}
	return 0, false
}

// Distance sums the edge weights along path. A single-town path has distance
// zero. If any consecutive pair is not connected the result is NoSuchRoute.
func (n *Network) Distance(path domain.Path) (domain.Distance, error) {
	if len(path) == 0 {
		return domain.NoSuchRoute, domain.InvalidInput("path", "must not be empty")
	}
	for _, id := range path {
		if id == "" {
			return domain.NoSuchRoute, domain.InvalidInput("path", "must not contain an empty town")
		}
	}

	total := 0
	for i := 0; i < len(path)-1; i++ {
		w, ok := n.weight(path[i], path[i+1])
		if !ok {
			return domain.NoSuchRoute, nil
		}
		total += w
	}
	return domain.Found(total), nil
}

func compareEdges(a, b domain.Edge) int {
	if c := cmp.Compare(a.From, b.From); c != 0 {
		return c
	}
	return cmp.Compare(a.To, b.To)
}

func validateEndpoints(start, end domain.NodeID) error {
	if start == "" {
		return domain.InvalidInput("start", "is required")
	}
	if end == "" {
		return domain.InvalidInput("end", "is required")
	}
	return nil
}

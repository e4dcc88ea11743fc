package routing

import (
	"container/heap"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
)

// ShortestRoute returns the minimum total distance over walks from start to end
// that traverse at least one edge, or NoSuchRoute.
func (n *Network) ShortestRoute(start, end domain.NodeID) (domain.Distance, error) {
	route, err := n.ShortestPath(start, end)
	if err != nil {
		return domain.NoSuchRoute, err
	}
	return route.Distance, nil
}

// ShortestPath is ShortestRoute that also reports the winning walk. The search
// is seeded with the outgoing edges of start instead of start itself, so a
// round trip (start == end) has to leave and come back.
func (n *Network) ShortestPath(start, end domain.NodeID) (domain.Route, error) {
	if err := validateEndpoints(start, end); err != nil {
		return domain.Route{Distance: domain.NoSuchRoute}, err
	}

	var (
		pq      frontier
		settled = make(map[domain.NodeID]struct{})
		seq     int
	)
	push := func(c candidate) {
		c.seq = seq
		seq++
		heap.Push(&pq, c)
	}

	for _, nb := range n.adjacency[start] {
		push(candidate{node: nb.to, distance: nb.weight, path: domain.Path{start, nb.to}})
	}

	for pq.Len() > 0 {
		c := heap.Pop(&pq).(candidate)
		if _, done := settled[c.node]; done {
			continue
		}
		settled[c.node] = struct{}{}

		if c.node == end {
			return domain.Route{Path: c.path, Distance: domain.Found(c.distance)}, nil
		}

		for _, nb := range n.adjacency[c.node] {
			if _, done := settled[nb.to]; done {
				continue
			}
			push(candidate{node: nb.to, distance: c.distance + nb.weight, path: c.path.Extend(nb.to)})
		}
	}

	return domain.Route{Distance: domain.NoSuchRoute}, nil
}

type candidate struct {
	node     domain.NodeID
	distance int
	path     domain.Path
	seq      int
}

// frontier is a min-heap on distance; ties go to the earliest push.
type frontier []candidate

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].distance != f[j].distance {
		return f[i].distance < f[j].distance
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(candidate)) }

func (f *frontier) Pop() any {
	old := *f
	last := old[len(old)-1]
	*f = old[:len(old)-1]
	return last
}

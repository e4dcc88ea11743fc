package domain

import "strings"

// NodeID identifies a town in the rail network.
type NodeID string

// Path is an ordered sequence of towns. Consecutive towns are expected to be
// connected by an edge, although Distance accepts arbitrary candidates.
type Path []NodeID

// String renders the path the way the route finder UI displays it.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, id := range p {
		parts[i] = string(id)
	}
	return strings.Join(parts, " → ")
}

// Stops returns the number of edges traversed by the path.
func (p Path) Stops() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Extend returns a new path of p followed by next. The result never shares
// backing storage with p.
func (p Path) Extend(next NodeID) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = next
	return out
}

// Edge is a directed, positively weighted connection between two towns.
type Edge struct {
	From   NodeID `json:"from" yaml:"from"`
	To     NodeID `json:"to" yaml:"to"`
	Weight int    `json:"distance" yaml:"distance"`
}

// Route pairs a walk with its total distance.
type Route struct {
	Path     Path
	Distance Distance
}

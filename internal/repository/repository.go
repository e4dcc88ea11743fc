// Package repository persists the rail network in a graph database as
// (:Town)-[:ROUTE {distance}]->(:Town) relationships.
package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
	"github.com/MarianaMaksimiv/ACME-Train/internal/graph"
)

// ErrMalformedRecord marks a ROUTE record that cannot be turned into an edge.
var ErrMalformedRecord = errors.New("malformed route record")

// NetworkRepository reads and writes network edges through a graph client.
type NetworkRepository struct {
	client graph.Client
}

// New instantiates a NetworkRepository backed by the supplied graph client.
func New(client graph.Client) *NetworkRepository {
	return &NetworkRepository{client: client}
}

// LoadEdges returns every ROUTE relationship ordered by origin and destination.
func (r *NetworkRepository) LoadEdges(ctx context.Context) ([]domain.Edge, error) {
	res, err := r.client.ExecuteRead(ctx, loadRoutesCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("load routes query: %w", err)
	}

	edges := make([]domain.Edge, 0, len(res.Records))
	for i, record := range res.Records {
		edge, err := edgeFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

// UpsertRoute ensures both towns exist and sets the route distance.
func (r *NetworkRepository) UpsertRoute(ctx context.Context, edge domain.Edge) error {
	if edge.From == "" || edge.To == "" {
		return errors.New("route origin and destination are required")
	}
	if edge.Weight <= 0 {
		return fmt.Errorf("route %s→%s: distance must be positive", edge.From, edge.To)
	}

	params := map[string]any{
		"from":     string(edge.From),
		"to":       string(edge.To),
		"distance": int64(edge.Weight),
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertRouteCypher, params); err != nil {
		return fmt.Errorf("upsert route %s→%s: %w", edge.From, edge.To, err)
	}
	return nil
}

// Ping verifies the underlying graph connection.
func (r *NetworkRepository) Ping(ctx context.Context) error {
	return r.client.VerifyConnectivity(ctx)
}

func edgeFromRecord(record graph.Record) (domain.Edge, error) {
	from := toString(record["from"])
	to := toString(record["to"])
	if from == "" || to == "" {
		return domain.Edge{}, fmt.Errorf("%w: missing town name", ErrMalformedRecord)
	}
	distance, ok := toInt(record["distance"])
	if !ok {
		return domain.Edge{}, fmt.Errorf("%w: distance %v of %s→%s is not an integer", ErrMalformedRecord, record["distance"], from, to)
	}
	return domain.Edge{From: domain.NodeID(from), To: domain.NodeID(to), Weight: distance}, nil
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func toInt(val any) (int, bool) {
	switch v := val.(type) {
	case int64:
		return int(v), true
	case int:
		return v, true
	case int32:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

const loadRoutesCypher = `
MATCH (a:Town)-[r:ROUTE]->(b:Town)
RETURN a.name AS from, b.name AS to, r.distance AS distance
ORDER BY from, to
`

const upsertRouteCypher = `
MERGE (a:Town {name: $from})
MERGE (b:Town {name: $to})
MERGE (a)-[r:ROUTE]->(b)
SET r.distance = $distance
`

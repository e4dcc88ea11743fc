package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
)

// Generator produces random rail networks.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator instance. Unset or out-of-range fields
// fall back to DefaultConfig.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.Towns <= 1 {
		cfg.Towns = def.Towns
	}
	if cfg.EdgeChance <= 0 || cfg.EdgeChance > 1 {
		cfg.EdgeChance = def.EdgeChance
	}
	if cfg.MinDistance <= 0 {
		cfg.MinDistance = def.MinDistance
	}
	if cfg.MaxDistance < cfg.MinDistance {
		cfg.MaxDistance = max(cfg.MinDistance, def.MaxDistance)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Config returns the effective configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate draws each ordered pair of distinct towns as an edge with
// probability EdgeChance. Every town gets at least one outgoing route so that
// no generated town is a dead end. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) ([]domain.Edge, error) {
	towns := make([]domain.NodeID, g.cfg.Towns)
	for i := range towns {
		towns[i] = TownName(i)
	}

	var edges []domain.Edge
	for i, from := range towns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		added := 0
		for j, to := range towns {
			if i == j || g.rand.Float64() >= g.cfg.EdgeChance {
				continue
			}
			edges = append(edges, domain.Edge{From: from, To: to, Weight: g.distance()})
			added++
		}
		if added == 0 {
			j := g.rand.Intn(len(towns) - 1)
			if j >= i {
				j++
			}
			edges = append(edges, domain.Edge{From: from, To: towns[j], Weight: g.distance()})
		}
	}
	return edges, nil
}

func (g *Generator) distance() int {
	return g.cfg.MinDistance + g.rand.Intn(g.cfg.MaxDistance-g.cfg.MinDistance+1)
}

// TownName names the i-th town: A..Z, then T27, T28 and so on.
func TownName(i int) domain.NodeID {
	if i < 26 {
		return domain.NodeID(rune('A' + i))
	}
	return domain.NodeID(fmt.Sprintf("T%d", i+1))
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MarianaMaksimiv/ACME-Train/internal/generator"
	"github.com/MarianaMaksimiv/ACME-Train/internal/network"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		towns       = flag.Int("towns", cfg.Towns, "number of towns to generate")
		edgeChance  = flag.Float64("edge-chance", cfg.EdgeChance, "probability of a route between any ordered pair of towns")
		minDistance = flag.Int("min-distance", cfg.MinDistance, "smallest route distance")
		maxDistance = flag.Int("max-distance", cfg.MaxDistance, "largest route distance")
		seed        = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		output      = flag.String("output", "data/network.yaml", "path of the YAML network file to write")
	)
	flag.Parse()

	genCfg := generator.Config{
		Towns:       *towns,
		EdgeChance:  clampProbability(*edgeChance),
		MinDistance: *minDistance,
		MaxDistance: *maxDistance,
		Seed:        *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	edges, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := generator.WriteNetwork(edges, *output); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write network: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "network written to %s (towns=%d routes=%d fingerprint=%s)\n",
		*output, genCfg.Towns, len(edges), network.Fingerprint(edges))
}

func clampProbability(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

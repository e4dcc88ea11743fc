package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MarianaMaksimiv/ACME-Train/internal/config"
	"github.com/MarianaMaksimiv/ACME-Train/internal/graph"
	"github.com/MarianaMaksimiv/ACME-Train/internal/logging"
	"github.com/MarianaMaksimiv/ACME-Train/internal/network"
	"github.com/MarianaMaksimiv/ACME-Train/internal/repository"
	"github.com/MarianaMaksimiv/ACME-Train/internal/routing"
	"github.com/MarianaMaksimiv/ACME-Train/internal/service"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

// run ingests the selected network and returns the process exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("ingest", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		networkFile = flags.String("network", "", "YAML network file to ingest (defaults to the reference network)")
		workers     = flags.Int("workers", 4, "Number of concurrent workers for ingestion")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	edges := network.Reference()
	if *networkFile != "" {
		edges, err = network.LoadFile(*networkFile)
		if err != nil {
			logger.Error("failed to load network file", "error", err, "path", *networkFile)
			return 1
		}
	}
	// Reject malformed networks before touching the database.
	if _, err := routing.New(edges); err != nil {
		logger.Error("invalid network", "error", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Graph.URI == "" {
		logger.Error("failed to create graph client", "error", graph.ErrMissingURI)
		return 1
	}
	graphClient, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	})
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		return 1
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	repo := repository.New(graphClient)
	ingestor := service.NewBulkIngestor(repo, *workers)

	start := time.Now()
	logger.Info("ingesting routes", "count", len(edges), "workers", *workers, "fingerprint", network.Fingerprint(edges))
	if err := ingestor.IngestRoutes(ctx, edges); err != nil {
		logger.Error("route ingestion failed", "error", err)
		return 1
	}

	logger.Info("ingestion complete", "duration", time.Since(start).String(), "routes", len(edges))
	return 0
}

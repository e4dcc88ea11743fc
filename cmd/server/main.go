package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MarianaMaksimiv/ACME-Train/internal/config"
	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
	"github.com/MarianaMaksimiv/ACME-Train/internal/graph"
	"github.com/MarianaMaksimiv/ACME-Train/internal/logging"
	"github.com/MarianaMaksimiv/ACME-Train/internal/network"
	"github.com/MarianaMaksimiv/ACME-Train/internal/repository"
	"github.com/MarianaMaksimiv/ACME-Train/internal/routing"
	"github.com/MarianaMaksimiv/ACME-Train/internal/server"
	"github.com/MarianaMaksimiv/ACME-Train/internal/service"
)

func main() {
	os.Exit(run(context.Background(), os.Stderr))
}

// run wires and serves the API until ctx is cancelled or a signal arrives. It
// returns the process exit code so deferred cleanup always runs.
func run(ctx context.Context, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	logger := logging.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		graphClient graph.Client
		health      server.HealthService
	)
	edges := network.Reference()
	switch cfg.Network.Source {
	case config.SourceFile:
		edges, err = network.LoadFile(cfg.Network.File)
		if err != nil {
			logger.Error("failed to load network file", "error", err, "path", cfg.Network.File)
			return 1
		}
	case config.SourceNeo4j:
		graphClient, err = buildGraphClient(ctx, cfg)
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
		health = server.GraphHealthService{Store: repo}
		edges, err = loadGraphEdges(ctx, repo)
		if err != nil {
			logger.Error("failed to load network from graph", "error", err)
			return 1
		}
	}

	n, err := routing.New(edges, routing.WithSearchBudget(cfg.Network.SearchBudget))
	if err != nil {
		logger.Error("invalid network", "error", err, "source", cfg.Network.Source)
		return 1
	}
	logger.Info("network loaded",
		"source", cfg.Network.Source,
		"towns", len(n.Towns()),
		"routes", len(edges),
		"fingerprint", network.Fingerprint(edges),
		"search_budget", cfg.Network.SearchBudget,
	)

	var (
		registerer prometheus.Registerer
		gatherer   prometheus.Gatherer
	)
	if cfg.HTTP.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		registerer, gatherer = reg, reg
	}

	routeService := service.NewRouteService(n, logger.With("component", "routes"), service.NewMetrics(registerer))
	apiHandlers := server.NewAPIHandlers(logger, routeService, service.NewScenarioRunner(routeService, 0))

	if cfg.Auth.APIKey == "" {
		logger.Warn("API_KEY is not set; /api routes are unauthenticated")
	}

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           health,
		API:              apiHandlers,
		APIKey:           cfg.Auth.APIKey,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
		Metrics:          gatherer,
	})

	srv := server.New(logger, cfg.HTTP, router)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
		return 1
	}
	return 0
}

func buildGraphClient(ctx context.Context, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, graph.ErrMissingURI
	}

	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	return graph.NewNeo4jClient(ctx, opts)
}

func loadGraphEdges(ctx context.Context, repo *repository.NetworkRepository) ([]domain.Edge, error) {
	if err := repo.Ping(ctx); err != nil {
		return nil, fmt.Errorf("graph unreachable: %w", err)
	}
	edges, err := repo.LoadEdges(ctx)
	if err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return nil, errors.New("graph holds no routes; run the ingest command first")
	}
	return edges, nil
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}


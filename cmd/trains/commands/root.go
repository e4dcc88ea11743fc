// Package commands implements the CLI commands for the trains query tool.
package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
	"github.com/MarianaMaksimiv/ACME-Train/internal/logging"
	"github.com/MarianaMaksimiv/ACME-Train/internal/network"
	"github.com/MarianaMaksimiv/ACME-Train/internal/routing"
	"github.com/MarianaMaksimiv/ACME-Train/internal/service"
)

// CLI represents the command line interface for trains.
type CLI struct {
	rootCmd     *cobra.Command
	networkFile string
	budget      int
}

// New creates a new CLI instance.
func New() *CLI {
	rootCmd := &cobra.Command{
		Use:           "trains",
		Short:         "Query distances and routes on a rail network",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{rootCmd: rootCmd}
	rootCmd.PersistentFlags().StringVar(&c.networkFile, "network", "", "YAML network file (defaults to the reference network)")
	rootCmd.PersistentFlags().IntVar(&c.budget, "budget", 0, "Maximum partial walks per enumeration, 0 for unbounded")

	rootCmd.AddCommand(c.newDistanceCmd())
	rootCmd.AddCommand(c.newMaxStopsCmd())
	rootCmd.AddCommand(c.newExactStopsCmd())
	rootCmd.AddCommand(c.newShortestCmd())
	rootCmd.AddCommand(c.newWithinDistanceCmd())
	rootCmd.AddCommand(c.newScenariosCmd())
	rootCmd.AddCommand(c.newNetworkCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// routeService loads the selected network and wraps it for querying.
func (c *CLI) routeService() (*service.RouteService, error) {
	edges := network.Reference()
	if c.networkFile != "" {
		var err error
		if edges, err = network.LoadFile(c.networkFile); err != nil {
			return nil, err
		}
	}
	n, err := routing.New(edges, routing.WithSearchBudget(c.budget))
	if err != nil {
		return nil, fmt.Errorf("invalid network: %w", err)
	}
	return service.NewRouteService(n, logging.Discard(), nil), nil
}

func parseBound(name, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.InvalidInput(name, fmt.Sprintf("%q is not an integer", raw))
	}
	return v, nil
}

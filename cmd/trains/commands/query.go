package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
)

func (c *CLI) newDistanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "distance TOWN [TOWN...]",
		Short:   "Print the distance along a route, e.g. A-B-C",
		Example: "  trains distance A-B-C\n  trains distance A E B C D",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.routeService()
			if err != nil {
				return err
			}
			d, err := svc.Distance(cmd.Context(), parsePath(args))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), d)
			return err
		},
	}
}

func (c *CLI) newMaxStopsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "max-stops START END MAX",
		Short: "List routes with at most MAX stops",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			bound, err := parseBound("maxStops", args[2])
			if err != nil {
				return err
			}
			svc, err := c.routeService()
			if err != nil {
				return err
			}
			routes, err := svc.RoutesWithMaxStops(cmd.Context(), domain.NodeID(args[0]), domain.NodeID(args[1]), bound)
			if err != nil {
				return err
			}
			return printPaths(cmd.OutOrStdout(), routes)
		},
	}
}

func (c *CLI) newExactStopsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exact-stops START END STOPS",
		Short: "List routes with exactly STOPS stops",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			bound, err := parseBound("exactStops", args[2])
			if err != nil {
				return err
			}
			svc, err := c.routeService()
			if err != nil {
				return err
			}
			routes, err := svc.RoutesWithExactStops(cmd.Context(), domain.NodeID(args[0]), domain.NodeID(args[1]), bound)
			if err != nil {
				return err
			}
			return printPaths(cmd.OutOrStdout(), routes)
		},
	}
}

func (c *CLI) newShortestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shortest START END",
		Short: "Print the shortest route; START equal to END finds the shortest round trip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.routeService()
			if err != nil {
				return err
			}
			route, err := svc.ShortestRoute(cmd.Context(), domain.NodeID(args[0]), domain.NodeID(args[1]))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !route.Distance.Exists() {
				_, err = fmt.Fprintln(out, route.Distance)
				return err
			}
			_, err = fmt.Fprintf(out, "%s via %s\n", route.Distance, route.Path)
			return err
		},
	}
}

func (c *CLI) newWithinDistanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "within-distance START END LIMIT",
		Short: "List routes shorter than LIMIT",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			bound, err := parseBound("maxDistance", args[2])
			if err != nil {
				return err
			}
			svc, err := c.routeService()
			if err != nil {
				return err
			}
			routes, err := svc.RoutesWithinDistance(cmd.Context(), domain.NodeID(args[0]), domain.NodeID(args[1]), bound)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range routes {
				if _, err := fmt.Fprintf(out, "%s (%s)\n", r.Path, r.Distance); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(out, countLabel(len(routes)))
			return err
		},
	}
}

func (c *CLI) newNetworkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "network",
		Short: "Describe the loaded network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.routeService()
			if err != nil {
				return err
			}
			summary := svc.Network()
			out := cmd.OutOrStdout()
			towns := make([]string, len(summary.Towns))
			for i, t := range summary.Towns {
				towns[i] = string(t)
			}
			fmt.Fprintf(out, "towns: %s\n", strings.Join(towns, " "))
			fmt.Fprintf(out, "fingerprint: %s\n", summary.Fingerprint)
			for _, e := range summary.Edges {
				fmt.Fprintf(out, "%s%s%d\n", e.From, e.To, e.Weight)
			}
			return nil
		},
	}
}

// parsePath accepts towns as separate arguments or joined by '-' or ','.
func parsePath(args []string) domain.Path {
	var path domain.Path
	for _, arg := range args {
		for _, id := range strings.FieldsFunc(arg, func(r rune) bool { return r == '-' || r == ',' }) {
			path = append(path, domain.NodeID(strings.TrimSpace(id)))
		}
	}
	return path
}

func printPaths(out io.Writer, routes []domain.Path) error {
	for _, r := range routes {
		if _, err := fmt.Fprintln(out, r); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(out, countLabel(len(routes)))
	return err
}

func countLabel(n int) string {
	if n == 1 {
		return "1 route"
	}
	return fmt.Sprintf("%d routes", n)
}

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MarianaMaksimiv/ACME-Train/internal/service"
)

// ErrScenariosFailed is returned when at least one scenario does not match
// its expected answer. The report has already been printed.
var ErrScenariosFailed = errors.New("scenarios failed")

func (c *CLI) newScenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Run the reference scenarios against the loaded network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workers, _ := cmd.Flags().GetInt("workers")
			svc, err := c.routeService()
			if err != nil {
				return err
			}
			results, err := service.NewScenarioRunner(svc, workers).Run(cmd.Context(), service.ReferenceScenarios())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, res := range results {
				status := "ok"
				if !res.Passed {
					status = "FAIL"
					failed++
				}
				fmt.Fprintf(out, "Output #%d: %s [%s] %s", res.ID, res.Actual, status, res.Description)
				if res.Err != nil {
					fmt.Fprintf(out, " (error: %v)", res.Err)
				} else if !res.Passed {
					fmt.Fprintf(out, " (expected %s)", res.Expected)
				}
				fmt.Fprintln(out)
			}
			if failed > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d scenarios failed\n", failed, len(results))
				return ErrScenariosFailed
			}
			return nil
		},
	}
	cmd.Flags().Int("workers", 4, "Scenarios evaluated concurrently")
	return cmd
}

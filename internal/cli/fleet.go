package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDeployCmd() *cobra.Command {
	var arrivalTurn int

	cmd := &cobra.Command{
		Use:   "deploy <source> <destination> <ships>",
		Short: "Send ships from one of your planets",
		Long: `Send ships from a planet you own toward another planet.

The ship count is capped at what the source holds. The arrival turn is the
earliest turn the fleet can reach its destination unless --arrival-turn names
a later one.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ships, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid ship count: %s", args[2])
			}

			req := map[string]any{
				"source":      args[0],
				"destination": args[1],
				"ships":       ships,
			}
			if cmd.Flags().Changed("arrival-turn") {
				req["arrival_turn"] = arrivalTurn
			}

			var result DeployResult
			if err := client.Post("/api/v1/deploy", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&arrivalTurn, "arrival-turn", 0, "Requested arrival turn")

	return cmd
}

func newDeploymentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deployments",
		Short: "List your fleets in transit",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result DeploymentsResult

			if err := client.Get("/api/v1/deployments", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

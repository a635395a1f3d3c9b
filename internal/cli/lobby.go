package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Join the game lobby",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result JoinResult

			if err := client.Post("/api/v1/join", nil, &result); err != nil {
				return err
			}

			// Keep the token so later commands need no credentials
			if result.SessionToken != "" && result.SessionToken != cfg.Token {
				if err := cfg.SaveToken(result.SessionToken); err != nil {
					return fmt.Errorf("failed to save token: %w", err)
				}
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newReadyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Mark yourself ready to start",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ReadyResult

			if err := client.Post("/api/v1/ready", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List seated players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayersResult

			if err := client.Get("/api/v1/players", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newPlanetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "planets",
		Short: "List planets",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlanetsResult

			if err := client.Get("/api/v1/planets", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

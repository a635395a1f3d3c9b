package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "planetgame",
		Short: "CLI tool for the planet game API",
		Long: `planetgame is a CLI tool for interacting with the planet game JSON API.

It can join the lobby, mark ready, inspect players and planets, deploy fleets,
and stream game events over a websocket.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load token from file if not provided via flag/env
			if err := cfg.LoadToken(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.Token)
			client.SetCredentials(cfg.Username, cfg.Password)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PLANETGAME_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: PLANETGAME_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: PLANETGAME_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Username, "username", "u", cfg.Username, "Player name (env: PLANETGAME_USERNAME)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Password, "password", "p", cfg.Password, "Password hash (env: PLANETGAME_PASSWORD)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newJoinCmd())
	rootCmd.AddCommand(newReadyCmd())
	rootCmd.AddCommand(newPlayersCmd())
	rootCmd.AddCommand(newPlanetsCmd())
	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newDeploymentsCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

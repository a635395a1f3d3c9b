package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session <username>",
		Short: "Register or log in and save a session token",
		Long: `Exchange a name and password for a session token.

The first use of a name registers it with the given password. The token is
written to the token file and used by later commands.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := cfg.Username
			if len(args) == 1 {
				username = args[0]
			}
			if username == "" {
				return fmt.Errorf("username is required")
			}

			req := map[string]string{
				"username": username,
				"password": cfg.Password,
			}

			var result SessionResult
			if err := client.Post("/api/v1/session", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

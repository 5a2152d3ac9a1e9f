package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const envPassword = "AVAILCTL_PASSWORD"

func newLoginCommand(appFn func() *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as administrator and store the access token",
		Long: `Sign in as administrator. The token is written to --token-file and used by later commands.

Examples:
  availctl login --email admin@example.com --password secret
  AVAILCTL_PASSWORD=secret availctl login --email admin@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			if password == "" {
				password = os.Getenv(envPassword)
			}
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}

			token, err := a.client.SignIn(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := a.opts.saveToken(token.AccessToken); err != nil {
				return err
			}

			a.printf("Signed in as %s, token valid until %s\n", email, token.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin e-mail")
	cmd.Flags().StringVar(&password, "password", "", "admin password (or "+envPassword+")")
	return cmd
}

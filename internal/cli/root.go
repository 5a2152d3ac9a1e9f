package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envServer = "AVAILCTL_SERVER"
	envToken  = "AVAILCTL_TOKEN"
)

// NewRootCommand собирает дерево команд availctl
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}
	var a *app

	root := &cobra.Command{
		Use:   "availctl",
		Short: "Manage appointment availability of the booking service",
		Long: `availctl edits weekly and per-date availability blocks of a running booking service.

It resolves hours with the same rules engine the server uses for public bookings.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.server == "" {
				return fmt.Errorf("server URL is required (--server or %s)", envServer)
			}
			a = newApp(opts, out)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.server, "server", envOr(envServer, "http://localhost:8080"), "booking service base URL")
	flags.StringVar(&opts.token, "token", os.Getenv(envToken), "admin access token")
	flags.StringVar(&opts.tokenFile, "token-file", defaultTokenFile(), "file where login stores the token")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP request timeout")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	appFn := func() *app { return a }
	root.AddCommand(
		newLoginCommand(appFn),
		newRulesCommand(appFn),
		newHoursCommand(appFn),
		newToggleHourCommand(appFn),
		newToggleAllDayCommand(appFn),
		newUnblockCommand(appFn),
	)
	return root
}

// Execute запускает CLI; .env в текущей директории подхватывается, если есть
func Execute() {
	_ = godotenv.Load()

	if err := NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"budgetkeeper/cmd/client/cmd/types"
	"budgetkeeper/internal/app/client"
	"budgetkeeper/internal/app/client/config"
	"budgetkeeper/internal/utils/logger"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	app       *client.Offline
	serverURL string
	jsonOut   bool
)

var rootCmd = &cobra.Command{
	Use:   "budgetkeeper",
	Short: "Budgetkeeper - personal budgeting with offline support",
	Long: `Budgetkeeper is a command line client for the budgeting server.

Reads are served from a local cache when the server is unreachable and
transaction changes made offline are queued and replayed once connectivity
returns.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: teardownApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad()
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	log = logger.New(cfg.Env)

	var err error
	app, err = client.NewOffline(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to set up the client: %w", err)
	}
	if err := app.Init(cmd.Context()); err != nil {
		return fmt.Errorf("failed to open the local store: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func teardownApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL, overrides BK_SERVER_URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")
}

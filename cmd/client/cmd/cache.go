package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"budgetkeeper/cmd/client/cmd/types"
	"budgetkeeper/internal/app/client"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local cache",
}

var cacheInvalidateCmd = &cobra.Command{
	Use:   "invalidate <key>",
	Short: "Mark one cached collection stale",
	Long: `Mark a cached collection stale so the next read fetches from the
server. Keys: accounts, categories, categoryGroups, payees, transactions,
dashboard.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}
		if err := app.InvalidateCache(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to invalidate %q: %w", args[0], err)
		}
		color.Green("Cache key %q invalidated.", args[0])
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Wipe all cached data and the pending queue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}

		pending, err := app.PendingChanges(cmd.Context())
		if err == nil && pending > 0 {
			fmt.Printf("Warning: %d queued changes will be discarded.\n", pending)
		}

		if err := app.ClearAllData(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear the cache: %w", err)
		}
		color.Green("Local cache cleared.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheInvalidateCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

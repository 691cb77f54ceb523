package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"budgetkeeper/cmd/client/cmd/types"
	"budgetkeeper/internal/app/client"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connectivity and sync state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}

		if app.IsOnline() {
			fmt.Printf("Server:   %s\n", color.GreenString("online"))
		} else {
			fmt.Printf("Server:   %s\n", color.RedString("offline"))
		}

		pending, err := app.PendingChanges(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Pending:  %d queued changes\n", pending)

		if app.IsSyncing() {
			fmt.Println("Sync:     in progress")
		} else if last := app.LastSyncTime(); !last.IsZero() {
			fmt.Printf("Sync:     last finished %s\n", last.Format("2006-01-02 15:04:05"))
		} else {
			fmt.Println("Sync:     never ran")
		}

		if dropped := app.DroppedCount(); dropped > 0 {
			color.Yellow("Dropped:  %d changes (%s)", dropped, app.SyncError())
		}
		return nil
	},
}

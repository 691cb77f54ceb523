package sync

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"budgetkeeper/cmd/client/cmd/types"
	"budgetkeeper/internal/app/client"
)

var Cmd = &cobra.Command{
	Use:   "sync",
	Short: "Replay queued changes now",
	Long: `Drain the pending change queue against the server.

Changes replay oldest first. A change rejected by the server is dropped, a
change that keeps failing on server errors is dropped after three retries;
both are reported here.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}

		if !app.IsOnline() {
			color.Yellow("Server unreachable, queued changes stay pending.")
			return nil
		}

		pending, err := app.PendingChanges(cmd.Context())
		if err != nil {
			return err
		}
		if pending == 0 {
			fmt.Println("Nothing to sync.")
			return nil
		}

		fmt.Printf("Replaying %d queued changes...\n", pending)
		start := time.Now()
		if err := app.Sync(cmd.Context()); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		remaining, err := app.PendingChanges(cmd.Context())
		if err != nil {
			return err
		}

		color.Green("Sync finished in %v.", time.Since(start).Round(time.Millisecond))
		if dropped := app.DroppedCount(); dropped > 0 {
			color.Yellow("%d changes were dropped: %s", dropped, app.SyncError())
		}
		if remaining > 0 {
			color.Yellow("%d changes still pending.", remaining)
		}
		return nil
	},
}

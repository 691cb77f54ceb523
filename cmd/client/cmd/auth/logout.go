package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"budgetkeeper/cmd/client/cmd/types"
	"budgetkeeper/internal/app/client"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and wipe local data",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}

		pending, err := app.PendingChanges(cmd.Context())
		if err == nil && pending > 0 {
			fmt.Printf("Warning: %d queued changes will be discarded.\n", pending)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Logout(ctx); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
		color.Green("Logged out.")
		return nil
	},
}

package transactions

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"budgetkeeper/cmd/client/cmd/types"
	"budgetkeeper/internal/app/client"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid transaction id %q", args[0])
		}

		result, err := app.DeleteTransaction(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}

		if result.Offline {
			color.Yellow("Deleted locally, will sync when the server is reachable.")
		} else {
			color.Green("Deleted transaction %d.", id)
		}
		return nil
	},
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"budgetkeeper/cmd/client/cmd/types"
	"budgetkeeper/internal/app/client"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the monthly overview",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}

		stats, err := app.GetDashboard(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load the dashboard: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		fmt.Printf("Total balance:    %s\n", stats.TotalBalance.StringFixed(2))
		fmt.Printf("Monthly income:   %s\n", color.GreenString(stats.MonthlyIncome.StringFixed(2)))
		fmt.Printf("Monthly expenses: %s\n", color.RedString(stats.MonthlyExpenses.StringFixed(2)))
		fmt.Printf("Active accounts:  %d\n", stats.AccountsCount)

		if !app.IsOnline() {
			color.Yellow("offline: showing cached data")
		}
		return nil
	},
}

package accounts

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"budgetkeeper/cmd/client/cmd/types"
	"budgetkeeper/internal/app/client"
)

var refresh bool

var Cmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts",
	Long: `List the accounts with their balances.

Served from the local cache when fresh or when the server is unreachable;
use --refresh to force a fetch.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}

		accounts, err := app.GetAccounts(cmd.Context(), refresh)
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(accounts)
		}

		if len(accounts) == 0 {
			fmt.Println("No accounts.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tBALANCE\tCURRENCY")
		for _, a := range accounts {
			balance := a.Balance.StringFixed(2)
			if a.Balance.IsNegative() {
				balance = color.RedString(balance)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Type, balance, a.Currency)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if !app.IsOnline() {
			color.Yellow("offline: showing cached data")
		}
		return nil
	},
}

func init() {
	Cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and fetch from the server")
}

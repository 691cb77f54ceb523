package transactions

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

var (
	listAccountID int64
	listRefresh   bool
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}

		q := client.TransactionQuery{ForceRefresh: listRefresh}
		if listAccountID > 0 {
			q.AccountID = &listAccountID
		}

		txs, err := app.GetTransactions(cmd.Context(), q)
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(txs)
		}

		if len(txs) == 0 {
			fmt.Println("No transactions.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tACCOUNT\tAMOUNT\tPAYEE\tDESCRIPTION")
		for _, tx := range txs {
			id := fmt.Sprintf("%d", tx.ID)
			if tx.ID < 0 {
				id = color.YellowString("%d*", tx.ID)
			}
			amount := tx.Amount.StringFixed(2)
			if tx.Amount.IsNegative() {
				amount = color.RedString(amount)
			} else {
				amount = color.GreenString(amount)
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n", id, tx.Date, tx.AccountID, amount, tx.Payee, tx.Description)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if pending, err := app.PendingChanges(cmd.Context()); err == nil && pending > 0 {
			color.Yellow("* not yet synced (%d pending)", pending)
		}
		if !app.IsOnline() {
			color.Yellow("offline: showing cached data")
		}
		return nil
	},
}

func init() {
	ListCmd.Flags().Int64Var(&listAccountID, "account", 0, "only transactions on this account")
	ListCmd.Flags().BoolVar(&listRefresh, "refresh", false, "bypass the cache and fetch from the server")
}

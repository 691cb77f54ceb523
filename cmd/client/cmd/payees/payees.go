package payees

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
	Use:   "payees",
	Short: "List payees, most used first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}

		payees, err := app.GetPayees(cmd.Context(), refresh)
		if err != nil {
			return fmt.Errorf("failed to list payees: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(payees)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tUSED")
		for _, p := range payees {
			fmt.Fprintf(w, "%d\t%s\t%d\n", p.ID, p.Name, p.UseCount)
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

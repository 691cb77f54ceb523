package categories

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"budgetkeeper/cmd/client/cmd/types"
	"budgetkeeper/internal/app/client"
	"budgetkeeper/internal/model"
)

var refresh bool

var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories grouped by category group",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}

		cats, err := app.GetCategories(cmd.Context(), refresh)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		groups, err := app.GetCategoryGroups(cmd.Context(), refresh)
		if err != nil {
			return fmt.Errorf("failed to list category groups: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Groups     []model.CategoryGroup `json:"groups"`
				Categories []model.Category      `json:"categories"`
			}{groups, cats})
		}

		groupName := make(map[int64]string, len(groups))
		for _, g := range groups {
			groupName[g.ID] = g.Name
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tGROUP")
		for _, c := range cats {
			group := ""
			if c.GroupID != nil {
				group = groupName[*c.GroupID]
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Type, group)
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

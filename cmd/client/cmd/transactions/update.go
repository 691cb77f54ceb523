package transactions

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"budgetkeeper/cmd/client/cmd/types"
	"budgetkeeper/internal/app/client"
	"budgetkeeper/internal/model"
)

var (
	updateAccountID  int64
	updateCategoryID int64
	updateAmount     string
	updateDesc       string
	updateDate       string
	updatePayee      string
	updateMemo       string
)

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a transaction",
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

		amount, err := decimal.NewFromString(updateAmount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", updateAmount, err)
		}

		tx := model.Transaction{
			AccountID:   updateAccountID,
			Amount:      amount,
			Description: updateDesc,
			Date:        updateDate,
			Payee:       updatePayee,
			Memo:        updateMemo,
		}
		if updateCategoryID > 0 {
			tx.CategoryID = &updateCategoryID
		}

		result, err := app.UpdateTransaction(cmd.Context(), id, tx)
		if err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		if result.Offline {
			color.Yellow("Updated locally, will sync when the server is reachable.")
		} else {
			color.Green("Updated transaction %d.", id)
		}
		return nil
	},
}

func init() {
	UpdateCmd.Flags().Int64Var(&updateAccountID, "account", 0, "account id")
	UpdateCmd.Flags().Int64Var(&updateCategoryID, "category", 0, "category id")
	UpdateCmd.Flags().StringVar(&updateAmount, "amount", "", "amount, negative for expenses")
	UpdateCmd.Flags().StringVar(&updateDesc, "description", "", "description")
	UpdateCmd.Flags().StringVar(&updateDate, "date", "", "date (YYYY-MM-DD)")
	UpdateCmd.Flags().StringVar(&updatePayee, "payee", "", "payee name")
	UpdateCmd.Flags().StringVar(&updateMemo, "memo", "", "memo")
	_ = UpdateCmd.MarkFlagRequired("account")
	_ = UpdateCmd.MarkFlagRequired("amount")
	_ = UpdateCmd.MarkFlagRequired("description")
	_ = UpdateCmd.MarkFlagRequired("date")
}

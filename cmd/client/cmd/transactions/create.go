package transactions

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"budgetkeeper/cmd/client/cmd/types"
	"budgetkeeper/internal/app/client"
	"budgetkeeper/internal/model"
)

var (
	createAccountID  int64
	createCategoryID int64
	createAmount     string
	createDesc       string
	createDate       string
	createPayee      string
	createMemo       string
	createCleared    bool
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Book a transaction",
	Long: `Book a transaction. Amounts are positive for income and negative
for expenses. When offline the transaction is stored locally under a
placeholder id and replayed on the next sync.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}

		amount, err := decimal.NewFromString(createAmount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", createAmount, err)
		}

		tx := model.Transaction{
			AccountID:   createAccountID,
			Amount:      amount,
			Description: createDesc,
			Date:        createDate,
			Payee:       createPayee,
			Memo:        createMemo,
		}
		if createCategoryID > 0 {
			tx.CategoryID = &createCategoryID
		}
		if createCleared {
			tx.Cleared = model.ClearedCleared
		}

		result, err := app.CreateTransaction(cmd.Context(), tx)
		if err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		if result.Offline {
			color.Yellow("Queued offline as %d, will sync when the server is reachable.", result.ID)
		} else {
			color.Green("Created transaction %d.", result.ID)
		}
		return nil
	},
}

func init() {
	CreateCmd.Flags().Int64Var(&createAccountID, "account", 0, "account id")
	CreateCmd.Flags().Int64Var(&createCategoryID, "category", 0, "category id")
	CreateCmd.Flags().StringVar(&createAmount, "amount", "", "amount, negative for expenses")
	CreateCmd.Flags().StringVar(&createDesc, "description", "", "description")
	CreateCmd.Flags().StringVar(&createDate, "date", time.Now().Format("2006-01-02"), "date (YYYY-MM-DD)")
	CreateCmd.Flags().StringVar(&createPayee, "payee", "", "payee name")
	CreateCmd.Flags().StringVar(&createMemo, "memo", "", "memo")
	CreateCmd.Flags().BoolVar(&createCleared, "cleared", false, "mark as cleared")
	_ = CreateCmd.MarkFlagRequired("account")
	_ = CreateCmd.MarkFlagRequired("amount")
	_ = CreateCmd.MarkFlagRequired("description")
}

package cmd

import (
	"budgetkeeper/cmd/client/cmd/accounts"
	"budgetkeeper/cmd/client/cmd/auth"
	"budgetkeeper/cmd/client/cmd/categories"
	"budgetkeeper/cmd/client/cmd/payees"
	"budgetkeeper/cmd/client/cmd/sync"
	"budgetkeeper/cmd/client/cmd/transactions"
)

func init() {
	rootCmd.AddCommand(auth.Cmd)
	auth.Cmd.AddCommand(auth.RegisterCmd)
	auth.Cmd.AddCommand(auth.LoginCmd)
	auth.Cmd.AddCommand(auth.LogoutCmd)
	auth.Cmd.AddCommand(auth.ChangePasswordCmd)

	rootCmd.AddCommand(accounts.Cmd)
	rootCmd.AddCommand(categories.Cmd)
	rootCmd.AddCommand(payees.Cmd)

	rootCmd.AddCommand(transactions.Cmd)
	transactions.Cmd.AddCommand(transactions.ListCmd)
	transactions.Cmd.AddCommand(transactions.CreateCmd)
	transactions.Cmd.AddCommand(transactions.UpdateCmd)
	transactions.Cmd.AddCommand(transactions.DeleteCmd)

	rootCmd.AddCommand(sync.Cmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(cacheCmd)
}

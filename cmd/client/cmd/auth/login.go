package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"budgetkeeper/cmd/client/cmd/types"
	"budgetkeeper/internal/app/client"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the server",
	Long: `Authenticate against the budgeting server.

The session is stored locally, so subsequent commands run authenticated
until logout or expiry.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}

		fmt.Print("Email: ")
		var email string
		_, _ = fmt.Scanln(&email)

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Login(ctx, email, string(password)); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		color.Green("Logged in.")

		if err := app.Sync(ctx); err != nil {
			fmt.Printf("Warning: sync failed: %v\n", err)
			fmt.Println("You can keep working offline, changes will be replayed later.")
		}
		return nil
	},
}

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

var ChangePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the server password",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}

		fmt.Print("Current password: ")
		current, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()

		next, err := readPasswordTwice()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.ChangePassword(ctx, string(current), next); err != nil {
			return fmt.Errorf("password change failed: %w", err)
		}
		color.Green("Password changed.")
		return nil
	},
}

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

var registerName string

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a server account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.Offline)
		if !ok {
			return fmt.Errorf("client is not initialized")
		}

		fmt.Print("Email: ")
		var email string
		_, _ = fmt.Scanln(&email)

		password, err := readPasswordTwice()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Register(ctx, email, registerName, password); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		color.Green("Account created.")
		fmt.Println("Log in with: budgetkeeper auth login")
		return nil
	},
}

func readPasswordTwice() (string, error) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	fmt.Print("Repeat password: ")
	confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(password), nil
}

func init() {
	RegisterCmd.Flags().StringVar(&registerName, "name", "", "display name")
}

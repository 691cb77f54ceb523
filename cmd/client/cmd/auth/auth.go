package auth

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for account operations.
var Cmd = &cobra.Command{
	Use:   "auth",
	Short: "Register, log in and manage the session",
}

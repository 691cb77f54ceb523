package transactions

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for transaction operations.
var Cmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "List and change transactions",
	Long: `Transaction reads come from the local cache when the server is
unreachable. Creates, updates and deletes made offline are applied to the
cache immediately and queued for replay.`,
}

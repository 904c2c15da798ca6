package list

import (
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pricing tiers and calculator constants",
		Long: `List the values quotes are computed from.
Currently supports listing:
  - Pricing tiers, built in or from an INI file
  - Infrastructure constants used to size domains and inboxes`,
	}

	cmd.AddCommand(NewTiersCmd())
	cmd.AddCommand(NewConstantsCmd())

	return cmd
}

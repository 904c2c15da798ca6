package init

import (
	"github.com/spf13/cobra"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize coldcalc configuration files",
		Long: `Initialize coldcalc configuration files.

This command helps you create starter files for coldcalc.
You can create either a config.yaml file with default settings or a
tiers.ini file holding the built-in pricing tiers, ready to edit.`,
	}

	cmd.AddCommand(NewConfigCmd())
	cmd.AddCommand(NewTiersCmd())

	return cmd
}

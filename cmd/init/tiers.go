package init

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"coldcalc/internal/pricing"
)

// NewTiersCmd creates the tiers subcommand
func NewTiersCmd() *cobra.Command {
	var force bool
	var output string

	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "Create a tiers.ini file with the built-in pricing tiers",
		Long: `Create a tiers.ini file holding the built-in pricing tiers.

Edit the file and pass it to "coldcalc quote --tiers" or set
quote.tiers_file in config.yaml to quote against your own plans.
Sections must stay ordered by capacity.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = "tiers.ini"
			}

			absPath, err := filepath.Abs(output)
			if err != nil {
				return fmt.Errorf("failed to resolve absolute path: %w", err)
			}

			if _, err := os.Stat(absPath); err == nil && !force {
				return fmt.Errorf("file %s already exists. Use --force to overwrite", absPath)
			}

			dir := filepath.Dir(absPath)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}

			if err := pricing.WriteTiersINI(pricing.DefaultTable, absPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created tiers file: %s\n", absPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing file")
	cmd.Flags().StringVar(&output, "output", "", "Output file path (default: ./tiers.ini)")

	return cmd
}

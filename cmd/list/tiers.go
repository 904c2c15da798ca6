package list

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"coldcalc/internal/config"
	"coldcalc/internal/format"
	"coldcalc/internal/pricing"
)

// NewTiersCmd creates and returns the tiers command
func NewTiersCmd() *cobra.Command {
	var (
		tiersFile    string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "List pricing tiers",
		Long: `List the pricing tiers in selection order with their monthly and
annual prices, the saving annual billing gives and the monthly email
capacity each tier covers.`,
		Example: `  # List the built-in tiers
  coldcalc list tiers

  # List tiers from a custom file as JSON
  coldcalc list tiers --tiers tiers.ini --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := pricing.DefaultTable
			if tiersFile != "" {
				loaded, err := pricing.LoadTiersINI(tiersFile)
				if err != nil {
					return err
				}
				table = loaded
			}
			return printTiers(cmd, table, outputFormat)
		},
	}

	cmd.Flags().StringVar(&tiersFile, "tiers", "", "INI file with custom pricing tiers")
	cmd.Flags().StringVarP(&outputFormat, "format", "o", "text", "Output format (text or json)")

	return cmd
}

func printTiers(cmd *cobra.Command, table *pricing.Table, outputFormat string) error {
	out := cmd.OutOrStdout()

	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(table.Tiers(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tiers: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	case "text":
	default:
		return fmt.Errorf("invalid format %q: must be text or json", outputFormat)
	}

	fm := format.New(config.Config.Locale)
	fmt.Fprintf(out, "%-12s %12s %12s %8s %14s\n", "TIER", "MONTHLY", "ANNUAL", "SAVE", "EMAILS/MO")
	for _, tier := range table.Tiers() {
		fmt.Fprintf(out, "%-12s %12s %12s %8s %14s\n",
			tier.Name,
			fm.Currency(tier.MonthlyPrice),
			fm.Currency(tier.AnnualPrice),
			fm.Percent(tier.AnnualDiscountPercent()),
			fm.Count(tier.CapacityEmailsPerMonth))
	}
	return nil
}

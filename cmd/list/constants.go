package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"coldcalc/internal/calculator"
	"coldcalc/internal/config"
	"coldcalc/internal/format"
)

// NewConstantsCmd creates and returns the constants command
func NewConstantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "constants",
		Short: "List infrastructure constants",
		Long: `List the fixed values used to size infrastructure: inboxes per domain,
emails each inbox sends per day, days per month and the add-on fee.`,
		Example: `  # List calculator constants
  coldcalc list constants`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := calculator.DefaultConstants
			fm := format.New(config.Config.Locale)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Inboxes per domain:          %d\n", c.InboxesPerDomain)
			fmt.Fprintf(out, "Emails per inbox per day:    %d\n", c.EmailsPerInboxPerDay)
			fmt.Fprintf(out, "Days per month:              %d\n", c.DaysPerMonth)
			fmt.Fprintf(out, "Emails per domain per month: %s\n", fm.Int(c.EmailsPerDomainPerMonth()))
			fmt.Fprintf(out, "Lead Finder add-on:          %s/mo\n", fm.Currency(c.AddOnFee))
			return nil
		},
	}

	return cmd
}

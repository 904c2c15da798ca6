package quote

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"coldcalc/internal/calculator"
	"coldcalc/internal/config"
	"coldcalc/internal/format"
	"coldcalc/internal/logging"
	"coldcalc/internal/output"
	"coldcalc/internal/pricing"
	"coldcalc/internal/slider"
)

// now is replaced in tests
var now = time.Now

type quoteOptions struct {
	emails       float64
	position     float64
	billing      string
	domainCost   float64
	inboxCost    float64
	tiersFile    string
	output       string
	outputFormat string
	outputDir    string
	bucket       string
	bucketRegion string
	role         string
}

// NewQuoteCmd creates the quote command
func NewQuoteCmd() *cobra.Command {
	opts := &quoteOptions{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Calculate the monthly cost of a sending volume",
		Long: `Calculate the domains and inboxes needed to send a monthly email volume
and the resulting monthly and annual cost.

Inputs outside the supported range are clamped rather than rejected:
the volume is kept between 100 and 500,000 emails per month and negative
costs are treated as zero.`,
		Example: `  # Quote 5,000 emails per month with the default unit costs
  coldcalc quote --emails 5000

  # Annual billing with custom unit costs
  coldcalc quote --emails 120000 --billing annual --domain-cost 12 --inbox-cost 4

  # Pick the volume with a slider position (0-100) instead
  coldcalc quote --slider 65

  # Save an HTML report to S3
  coldcalc quote --emails 250000 --format html --output s3 --bucket my-bucket --bucket-region us-east-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(cmd, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.emails, "emails", 5000, "Target emails per month")
	cmd.Flags().Float64Var(&opts.position, "slider", 0, "Set the volume from a slider position (0-100) instead of --emails")
	cmd.Flags().StringVar(&opts.billing, "billing", "monthly", "Billing cycle (monthly, annual)")
	cmd.Flags().Float64Var(&opts.domainCost, "domain-cost", 10, "Domain cost per year")
	cmd.Flags().Float64Var(&opts.inboxCost, "inbox-cost", 3.5, "Inbox cost per month")
	cmd.Flags().StringVar(&opts.tiersFile, "tiers", "", "INI file with custom pricing tiers")
	cmd.Flags().StringVar(&opts.output, "output", "stdout", "Output type (stdout, filesystem, s3)")
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "o", "text", "Output format (text, json, html)")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "output", "Base directory when --output=filesystem")
	cmd.Flags().StringVar(&opts.bucket, "bucket", "", "S3 bucket name (required when --output=s3)")
	cmd.Flags().StringVar(&opts.bucketRegion, "bucket-region", "", "S3 bucket region (required when --output=s3)")
	cmd.Flags().StringVar(&opts.role, "role", "", "IAM role to assume for S3 uploads")

	return cmd
}

func runQuote(cmd *cobra.Command, opts *quoteOptions) error {
	if err := config.BindFlags(cmd); err != nil {
		return err
	}
	config.Load()
	config.LogConfigurationSources(cmd)
	cfg := config.Config

	outCfg := output.Config{
		Type:      output.Type(cfg.Output),
		Format:    output.Format(cfg.OutputFormat),
		OutputDir: cfg.OutputDir,
		S3Bucket:  cfg.Bucket,
		S3Region:  cfg.BucketRegion,
		Role:      cfg.Role,
		Stdout:    cmd.OutOrStdout(),
	}
	if err := outCfg.Validate(); err != nil {
		return err
	}

	calc := calculator.Default
	if cfg.TiersFile != "" {
		table, err := pricing.LoadTiersINI(cfg.TiersFile)
		if err != nil {
			return err
		}
		calc = calculator.New(table, calculator.DefaultConstants)
	}

	emails := cfg.EmailsPerMonth
	if cmd.Flags().Changed("slider") {
		emails = slider.Default.ToVolumeRounded(opts.position)
		logging.Debug("Volume taken from slider position", map[string]interface{}{
			"position": opts.position,
			"emails":   emails,
		})
	}

	input := buildInput(emails, cfg)
	result := calc.Compute(input)
	logging.QuoteComputed(input.EmailsPerMonth, string(input.BillingCycle), result.Tier.Name, result.TotalMonthlyCost)

	if !calc.Table().Covers(input.EmailsPerMonth) {
		logging.Warn("Volume exceeds every pricing tier, quoting the largest tier", map[string]interface{}{
			"emails_per_month": input.EmailsPerMonth,
			"tier":             result.Tier.Name,
		})
	}

	q := output.Quote{
		GeneratedAt: now(),
		Input:       input,
		Constants:   calc.Constants(),
		Result:      result,
	}

	data, err := output.Render(q, outCfg.Format, format.New(cfg.Locale), outCfg.Type == output.Stdout)
	if err != nil {
		return err
	}

	location, err := output.NewWriter(outCfg).Write(data, q.GeneratedAt, input.EmailsPerMonth)
	if err != nil {
		return err
	}
	if outCfg.Type != output.Stdout {
		fmt.Fprintf(cmd.OutOrStdout(), "Quote written to %s\n", location)
	}
	return nil
}

// buildInput assembles the calculator input from resolved configuration and
// clamps it, logging every value that had to change.
func buildInput(emails float64, cfg *config.GlobalConfig) calculator.Input {
	raw := calculator.Input{
		EmailsPerMonth:    emails,
		DomainCostPerYear: cfg.DomainCostPerYear,
		InboxCostPerMonth: cfg.InboxCostPerMonth,
	}

	cycle, err := calculator.ParseBillingCycle(cfg.BillingCycle)
	if err != nil {
		logging.InputClamped("billing_cycle", cfg.BillingCycle, calculator.Monthly)
		cycle = calculator.Monthly
	}
	raw.BillingCycle = cycle

	in := raw.Clamp(calculator.DefaultLimits)
	if in.EmailsPerMonth != raw.EmailsPerMonth {
		logging.InputClamped("emails_per_month", raw.EmailsPerMonth, in.EmailsPerMonth)
	}
	if in.DomainCostPerYear != raw.DomainCostPerYear {
		logging.InputClamped("domain_cost_per_year", raw.DomainCostPerYear, in.DomainCostPerYear)
	}
	if in.InboxCostPerMonth != raw.InboxCostPerMonth {
		logging.InputClamped("inbox_cost_per_month", raw.InboxCostPerMonth, in.InboxCostPerMonth)
	}
	return in
}

package cmd

import (
	initCmd "coldcalc/cmd/init"
	"coldcalc/cmd/list"
	"coldcalc/cmd/quote"
	"coldcalc/cmd/slider"
	"coldcalc/cmd/version"
	"coldcalc/internal/config"
	"coldcalc/internal/logging"

	"github.com/spf13/cobra"
)

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the coldcalc command tree
func NewRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "coldcalc",
		Short: "coldcalc - cold email infrastructure cost calculator",
		Long: `coldcalc estimates what it costs to run cold email outreach at a given
monthly volume: how many sending domains and inboxes are needed, which
sending platform tier covers the volume, and the monthly and annual total.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip config initialization for certain commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			if err := config.InitConfig(); err != nil {
				return err
			}
			if configFile != "" {
				if err := config.SetConfigFile(configFile); err != nil {
					return err
				}
			}

			// Command flags are bound by the commands that read them
			if err := config.BindPersistentFlags(cmd); err != nil {
				return err
			}
			config.Load()

			logging.Configure(logging.LogConfig{
				Level:  logging.ParseLevel(config.Config.LogLevel),
				Format: logging.ParseFormat(config.Config.LogFormat),
			})
			return nil
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log output format (text or json)")
	rootCmd.PersistentFlags().String("log-level", "INFO", "Set logging level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().String("locale", "en-US", "Locale used to format numbers, e.g. en-US or de-DE")

	// Add commands
	rootCmd.AddCommand(quote.NewQuoteCmd())
	rootCmd.AddCommand(slider.NewSliderCmd())
	rootCmd.AddCommand(list.NewListCmd())
	rootCmd.AddCommand(initCmd.NewInitCmd())
	rootCmd.AddCommand(version.NewVersionCmd())

	return rootCmd
}

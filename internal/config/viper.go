package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coldcalc/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable names, e.g. COLDCALC_QUOTE_BILLING_CYCLE
const EnvPrefix = "COLDCALC"

// flagNames maps config keys to the command line flags that set them
var flagNames = map[string]string{
	"app.log_format":             "log-format",
	"app.log_level":              "log-level",
	"app.locale":                 "locale",
	"quote.emails_per_month":     "emails",
	"quote.billing_cycle":        "billing",
	"quote.domain_cost_per_year": "domain-cost",
	"quote.inbox_cost_per_month": "inbox-cost",
	"quote.tiers_file":           "tiers",
	"output.type":                "output",
	"output.format":              "format",
	"output.dir":                 "output-dir",
	"output.bucket":              "bucket",
	"output.bucket_region":       "bucket-region",
	"output.role":                "role",
}

// Keys returns every configuration key in a stable order
func Keys() []string {
	return []string{
		"app.log_format",
		"app.log_level",
		"app.locale",
		"quote.emails_per_month",
		"quote.billing_cycle",
		"quote.domain_cost_per_year",
		"quote.inbox_cost_per_month",
		"quote.tiers_file",
		"output.type",
		"output.format",
		"output.dir",
		"output.bucket",
		"output.bucket_region",
		"output.role",
	}
}

// FlagName returns the flag bound to a config key
func FlagName(key string) string {
	if name, ok := flagNames[key]; ok {
		return name
	}
	return strings.ReplaceAll(key, ".", "-")
}

// parameterSource tracks where each parameter value came from
type parameterSource struct {
	Key    string
	Value  interface{}
	Source string
}

// getParameterSource determines where a parameter value came from (config file, env var, flag, or default)
func getParameterSource(key string, cmd *cobra.Command) parameterSource {
	value := viper.Get(key)
	envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	flagName := FlagName(key)

	if cmd != nil {
		if f := cmd.Flags().Lookup(flagName); f != nil && f.Changed {
			return parameterSource{key, value, "command line flag"}
		}

		for current := cmd; current != nil; current = current.Parent() {
			if f := current.PersistentFlags().Lookup(flagName); f != nil && f.Changed {
				return parameterSource{key, value, "command line flag"}
			}
		}
	}

	if _, exists := os.LookupEnv(envKey); exists {
		return parameterSource{key, value, "environment variable"}
	}

	if viper.GetViper().InConfig(key) {
		return parameterSource{key, value, "config file"}
	}

	return parameterSource{key, value, "default value"}
}

// LogConfigurationSources logs the source of each configuration parameter
func LogConfigurationSources(cmd *cobra.Command) {
	logging.Debug("Configuration parameter sources:", nil)
	for _, key := range Keys() {
		source := getParameterSource(key, cmd)
		logging.Debug(fmt.Sprintf("  %s = %v (from %s)", source.Key, source.Value, source.Source), nil)
	}
}

// SetDefaults registers the default value of every key
func SetDefaults() {
	viper.SetDefault("app.log_format", "text")
	viper.SetDefault("app.log_level", "INFO")
	viper.SetDefault("app.locale", "en-US")
	viper.SetDefault("quote.emails_per_month", 5000)
	viper.SetDefault("quote.billing_cycle", "monthly")
	viper.SetDefault("quote.domain_cost_per_year", 10.0)
	viper.SetDefault("quote.inbox_cost_per_month", 3.5)
	viper.SetDefault("quote.tiers_file", "")
	viper.SetDefault("output.type", "stdout")
	viper.SetDefault("output.format", "text")
	viper.SetDefault("output.dir", "output")
	viper.SetDefault("output.bucket", "")
	viper.SetDefault("output.bucket_region", "")
	viper.SetDefault("output.role", "")
}

// InitConfig initializes the Viper configuration. A config.yaml in the
// current directory is read when present; its absence is not an error.
func InitConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		logging.Debug("No config file found, using defaults and environment variables", nil)
	} else {
		logging.Debug("Loaded config file", map[string]interface{}{
			"path": viper.ConfigFileUsed(),
		})
	}

	return nil
}

// SetConfigFile sets a custom config file path and reloads the configuration
func SetConfigFile(configFile string) error {
	viper.SetConfigFile(configFile)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// BindFlags binds every flag of cmd that backs a config key
func BindFlags(cmd *cobra.Command) error {
	for _, key := range Keys() {
		flag := cmd.Flags().Lookup(FlagName(key))
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}
	return nil
}

// BindPersistentFlags binds only the root command's persistent flags, leaving
// command-local flags that share a name with a config key unbound
func BindPersistentFlags(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	for _, key := range Keys() {
		flag := flags.Lookup(FlagName(key))
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}
	return nil
}

// Load copies the resolved viper values into Config
func Load() {
	Config = &GlobalConfig{
		LogFormat:         viper.GetString("app.log_format"),
		LogLevel:          viper.GetString("app.log_level"),
		Locale:            viper.GetString("app.locale"),
		EmailsPerMonth:    viper.GetFloat64("quote.emails_per_month"),
		BillingCycle:      viper.GetString("quote.billing_cycle"),
		DomainCostPerYear: viper.GetFloat64("quote.domain_cost_per_year"),
		InboxCostPerMonth: viper.GetFloat64("quote.inbox_cost_per_month"),
		TiersFile:         viper.GetString("quote.tiers_file"),
		Output:            viper.GetString("output.type"),
		OutputFormat:      viper.GetString("output.format"),
		OutputDir:         viper.GetString("output.dir"),
		Bucket:            viper.GetString("output.bucket"),
		BucketRegion:      viper.GetString("output.bucket_region"),
		Role:              viper.GetString("output.role"),
	}
}

// DefaultConfigContent is the starter config.yaml written by `coldcalc init config`
const DefaultConfigContent = `# coldcalc configuration file

# Application Configuration
app:
  log_format: text  # Log output format (text or json)
  log_level: INFO  # Set logging level (DEBUG, INFO, WARN, ERROR)
  locale: en-US  # Locale used for digit grouping in quotes

# Quote defaults
quote:
  emails_per_month: 5000  # Target monthly sending volume (100 - 500000)
  billing_cycle: monthly  # monthly or annual
  domain_cost_per_year: 10  # Registration cost of one domain
  inbox_cost_per_month: 3.5  # Cost of one mailbox
  tiers_file: ""  # Optional INI file replacing the built-in pricing tiers

# Output Configuration
output:
  type: stdout  # stdout, filesystem or s3
  format: text  # text, json or html
  dir: output  # Base directory when type=filesystem
  bucket: ""  # S3 bucket name (required when type=s3)
  bucket_region: ""  # S3 bucket region (required when type=s3)
  role: ""  # Optional IAM role to assume for S3 uploads
`

// WriteDefaultConfig writes DefaultConfigContent to path. An existing file is
// only replaced when force is set.
func WriteDefaultConfig(path string, force bool) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !force {
		return "", fmt.Errorf("file %s already exists. Use --force to overwrite", absPath)
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(absPath, []byte(DefaultConfigContent), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return absPath, nil
}

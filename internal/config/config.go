package config

// GlobalConfig holds the resolved configuration for the application
type GlobalConfig struct {
	// LogFormat is the format for logging (text or json)
	LogFormat string

	// LogLevel is the minimum level that is logged
	LogLevel string

	// Locale controls digit grouping in rendered quotes
	Locale string

	// EmailsPerMonth is the target monthly sending volume
	EmailsPerMonth float64

	// BillingCycle is monthly or annual
	BillingCycle string

	// DomainCostPerYear is the registration cost of one domain
	DomainCostPerYear float64

	// InboxCostPerMonth is the cost of one mailbox
	InboxCostPerMonth float64

	// TiersFile optionally replaces the built-in pricing tiers
	TiersFile string

	// Output is where quotes are written (stdout, filesystem or s3)
	Output string

	// OutputFormat is text, json or html
	OutputFormat string

	// OutputDir is the base directory for filesystem output
	OutputDir string

	// Bucket and BucketRegion locate the S3 destination
	Bucket       string
	BucketRegion string

	// Role is an optional IAM role assumed for S3 uploads
	Role string
}

// Config is the global configuration instance
var Config = &GlobalConfig{
	LogFormat:         "text",
	LogLevel:          "INFO",
	Locale:            "en-US",
	EmailsPerMonth:    5000,
	BillingCycle:      "monthly",
	DomainCostPerYear: 10,
	InboxCostPerMonth: 3.5,
	Output:            "stdout",
	OutputFormat:      "text",
	OutputDir:         "output",
}

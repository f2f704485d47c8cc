package config

// Default values.
const (
	DefaultStorageURL           = "sqlite:///tasks.db"
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
	DefaultDateFormat           = "2006-01-02"
	DefaultFlagCompletedOverdue = true
)

// Config holds the full configuration for taskman.
type Config struct {
	// Storage placeholders
	StorageURL string `toml:"storage_url"`
	APIKey     string `toml:"api_key"`

	// Logging configuration
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Display
	DateFormat           string `toml:"date_format"`
	FlagCompletedOverdue bool   `toml:"flag_completed_overdue"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
	// File is the config file loaded last, empty when none was found.
	File string `toml:"-"`
}

// RedactedAPIKey returns the API key masked for display.
func (c *Config) RedactedAPIKey() string {
	if c.APIKey == "" {
		return ""
	}
	return "********"
}

package config

import "flag"

// parseFlags defines the config flags on fs and parses args.
// A nil fs gets a fresh ContinueOnError flag set.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskman", flag.ContinueOnError)
	}

	// Storage placeholder
	fs.StringVar(&cfg.StorageURL, "storage-url", cfg.StorageURL, "Task storage URL (placeholder, not used for I/O)")

	// Logging
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file path (empty logs to stderr)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	// Display
	fs.StringVar(&cfg.DateFormat, "date-format", cfg.DateFormat, "Due date layout (Go reference time)")
	fs.BoolVar(&cfg.FlagCompletedOverdue, "flag-completed-overdue", cfg.FlagCompletedOverdue, "Mark completed tasks as overdue in listings")

	return fs.Parse(args)
}

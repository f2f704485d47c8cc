package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskman configuration file
# Values can be overridden by TASKMAN_* environment variables or CLI flags

# Task storage location. Placeholder only: tasks live in memory for the
# lifetime of the process and are never written here.
storage_url = "sqlite:///tasks.db"

# API key for external services (unused, reserved)
api_key = ""

# Application log file (supports ~ expansion). Empty logs to stderr.
log_file = "~/.taskman/logs/app.log"

# Log level: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

# Include timestamps and caller location in log lines
log_timestamps = true
log_caller = false

# Due date layout, in Go reference time notation
date_format = "2006-01-02"

# Show the overdue marker on completed tasks in listings.
# false makes listings agree with the overdue task filter.
flag_completed_overdue = true
`
}

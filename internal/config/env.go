package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from TASKMAN_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKMAN_STORAGE_URL"); v != "" {
		cfg.StorageURL = v
	}
	if v := os.Getenv("TASKMAN_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	// An explicitly empty TASKMAN_LOG_FILE sends logs to stderr.
	if v, ok := os.LookupEnv("TASKMAN_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v := os.Getenv("TASKMAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKMAN_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TASKMAN_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv("TASKMAN_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
	}
	if v := os.Getenv("TASKMAN_DATE_FORMAT"); v != "" {
		cfg.DateFormat = v
	}
	if v := os.Getenv("TASKMAN_FLAG_COMPLETED_OVERDUE"); v != "" {
		cfg.FlagCompletedOverdue = boolFromString(v)
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

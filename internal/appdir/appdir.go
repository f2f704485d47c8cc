// Package appdir provides constants and helpers for the .taskman directory.
package appdir

import (
	"os"
	"path/filepath"
)

const (
	// Name is the application name used for config and log locations.
	Name = "taskman"

	// Dir is the name of the taskman state directory.
	Dir = ".taskman"

	// ConfigFile is the config file name.
	ConfigFile = "taskman.toml"

	// LogsDir is the log directory name inside Dir.
	LogsDir = "logs"

	// LogFile is the default application log file name.
	LogFile = "app.log"
)

// DirPath returns the path to the .taskman directory within base.
func DirPath(base string) string {
	if base == "." || base == "" {
		return Dir
	}
	return filepath.Join(base, Dir)
}

// ConfigPath returns the path to the config file inside the .taskman
// directory within base.
func ConfigPath(base string) string {
	return filepath.Join(DirPath(base), ConfigFile)
}

// LogPath returns the path to the application log inside the .taskman
// directory within base.
func LogPath(base string) string {
	return filepath.Join(DirPath(base), LogsDir, LogFile)
}

// HomeDirPath returns ~/.taskman, or "" when the home directory is unknown.
func HomeDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return DirPath(home)
}

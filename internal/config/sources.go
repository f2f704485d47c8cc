package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/nibzard/taskman/internal/appdir"
)

// projectConfigNames are checked in order relative to the working directory.
var projectConfigNames = []string{
	appdir.ConfigFile,
	"." + appdir.ConfigFile,
	appdir.ConfigPath(""),
}

// findProjectConfigFile returns the first project config file that exists.
func findProjectConfigFile() string {
	for _, name := range projectConfigNames {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

// findUserConfigFile returns the user config file, preferring ~/.taskman.
func findUserConfigFile() string {
	if dir := appdir.HomeDirPath(); dir != "" {
		path := filepath.Join(dir, appdir.ConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		path := filepath.Join(cfgDir, appdir.Name, appdir.ConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.StorageURL = DefaultStorageURL
	cfg.APIKey = ""
	cfg.LogFile = defaultLogFile()
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = true
	cfg.LogCaller = false
	cfg.DateFormat = DefaultDateFormat
	cfg.FlagCompletedOverdue = DefaultFlagCompletedOverdue
}

// defaultLogFile is ~/.taskman/logs/app.log, or .taskman/logs/app.log
// under the working directory when the home directory is unknown.
func defaultLogFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		return appdir.LogPath(home)
	}
	return appdir.LogPath("")
}

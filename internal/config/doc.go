// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.taskman/taskman.toml or OS-specific config directory)
// 3. Project config file (taskman.toml, .taskman.toml, or .taskman/taskman.toml)
// 4. Environment variables (TASKMAN_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.taskman/taskman.toml (preferred)
// - Windows: %APPDATA%\taskman\taskman.toml
// - macOS: ~/Library/Application Support/taskman/taskman.toml
// - Linux/BSD: $XDG_CONFIG_HOME/taskman/taskman.toml or ~/.config/taskman/taskman.toml
//
// storage_url and api_key are placeholders. They are loaded, printed, and
// validated, but nothing reads or writes task data through them.
package config

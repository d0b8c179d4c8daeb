package domain

import (
	"path/filepath"
)

// Config represents the application configuration.
type Config struct {
	Warnings []string    `toml:"-"`
	Loaded   []string    `toml:"-"` // Config files that were found and merged
	Store    StoreConfig `toml:"store"`
	Log      LogConfig   `toml:"log"`
	Strict   bool        `toml:"strict"` // Exit non-zero on not-found, usage and storage errors
}

// StoreConfig holds task storage settings from [store] section.
type StoreConfig struct {
	Backend string `toml:"backend"` // json (default), yaml or sqlite
	Path    string `toml:"path"`    // Storage location (empty = backend default); relative paths resolve against the working directory
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	Dir   string `toml:"dir"`   // Directory for task-cli.log (empty = default state dir)
}

// Store backends.
const (
	StoreJSON   = "json"
	StoreYAML   = "yaml"
	StoreSQLite = "sqlite"
)

// StoreBackends returns all supported store backends.
func StoreBackends() []string {
	return []string{StoreJSON, StoreYAML, StoreSQLite}
}

// IsValidStoreBackend returns true if backend is supported.
func IsValidStoreBackend(backend string) bool {
	for _, b := range StoreBackends() {
		if b == backend {
			return true
		}
	}
	return false
}

// Directory and file names for task-cli.
const (
	AppDirName          = "task-cli"       // Directory name under XDG config/state homes
	ConfigFileName      = "config.toml"    // Global config file name
	LocalConfigFileName = ".task-cli.toml" // Config file name in the working directory
	LogFileName         = "task-cli.log"   // Log file name
	DefaultLogLevel     = "info"
)

// DefaultStorePath returns the default storage file name for a backend.
func DefaultStorePath(backend string) string {
	switch backend {
	case StoreYAML:
		return "tasks.yaml"
	case StoreSQLite:
		return "tasks.db"
	default:
		return "tasks.json"
	}
}

// GlobalAppDir returns the global task-cli directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalAppDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalAppDir(configHome), ConfigFileName)
}

// LocalConfigPath returns the config path inside the working directory.
func LocalConfigPath(workDir string) string {
	return filepath.Join(workDir, LocalConfigFileName)
}

// LogPath returns the log file path inside logDir.
func LogPath(logDir string) string {
	return filepath.Join(logDir, LogFileName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: StoreJSON,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// ResolvePath returns the store path, resolved against workDir when relative.
func (c *StoreConfig) ResolvePath(workDir string) string {
	path := c.Path
	if path == "" {
		path = DefaultStorePath(c.Backend)
	}
	if filepath.IsAbs(path) || workDir == "" {
		return path
	}
	return filepath.Join(workDir, path)
}

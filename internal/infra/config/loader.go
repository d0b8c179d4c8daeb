// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/task-cli/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Environment variables that override file configuration.
const (
	EnvFile     = "TASK_CLI_FILE"
	EnvStore    = "TASK_CLI_STORE"
	EnvLogLevel = "TASK_CLI_LOG_LEVEL"
	EnvLogDir   = "TASK_CLI_LOG_DIR"
	EnvStrict   = "TASK_CLI_STRICT"
)

// DotEnvFileName is read from the working directory before the environment is consulted.
const DotEnvFileName = ".env"

// Loader loads configuration from TOML files and the environment.
// Precedence: defaults <- global file <- local file <- .env <- process environment.
type Loader struct {
	lookupEnv     func(string) (string, bool)
	workDir       string // Working directory (local config and .env live here)
	globalConfDir string // Path to global config directory (e.g., ~/.config/task-cli)
}

// NewLoader creates a new Loader for the given working directory.
func NewLoader(workDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: defaultGlobalConfigDir(),
		lookupEnv:     os.LookupEnv,
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config
// directory and environment lookup. This is useful for testing.
func NewLoaderWithGlobalDir(workDir, globalConfDir string, lookupEnv func(string) (string, bool)) *Loader {
	if lookupEnv == nil {
		lookupEnv = func(string) (string, bool) { return "", false }
	}
	return &Loader{
		workDir:       workDir,
		globalConfDir: globalConfDir,
		lookupEnv:     lookupEnv,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalAppDir(configHome)
}

// DefaultLogDir returns the default log directory ($XDG_STATE_HOME/task-cli).
// An empty string disables logging.
func DefaultLogDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, domain.AppDirName)
}

// GlobalConfigPath returns the global config file path, or "" when unknown.
func (l *Loader) GlobalConfigPath() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.ConfigFileName)
}

// LocalConfigPath returns the local config file path.
func (l *Loader) LocalConfigPath() string {
	return domain.LocalConfigPath(l.workDir)
}

// Load returns the merged configuration.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()

	for _, path := range []string{l.GlobalConfigPath(), l.LocalConfigPath()} {
		if path == "" {
			continue
		}
		cfg, err := loadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		base = mergeConfigs(base, cfg)
		base.Loaded = append(base.Loaded, path)
	}

	if err := l.applyEnv(base); err != nil {
		return nil, err
	}

	return base, nil
}

// applyEnv overrides cfg with environment variables.
// Values from the process environment win over values from .env.
func (l *Loader) applyEnv(cfg *domain.Config) error {
	dotenv, err := godotenv.Read(filepath.Join(l.workDir, DotEnvFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", domain.ErrConfigFileInvalid, DotEnvFileName, err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := l.lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := lookup(EnvStore); ok && v != "" {
		cfg.Store.Backend = v
	}
	if v, ok := lookup(EnvFile); ok && v != "" {
		cfg.Store.Path = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvLogDir); ok && v != "" {
		cfg.Log.Dir = v
	}
	if v, ok := lookup(EnvStrict); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring %s=%q: not a boolean", EnvStrict, v))
		} else {
			cfg.Strict = b
		}
	}
	return nil
}

// fileConfig is the configuration read from one file.
// strict is nil when the file does not set it.
type fileConfig struct {
	*domain.Config
	strict *bool
}

// loadFile loads a configuration from a file.
func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrConfigFileInvalid, path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *fileConfig {
	res := &fileConfig{Config: &domain.Config{}}
	var warnings []string

	for section, value := range raw {
		switch section {
		case "strict":
			if b, ok := value.(bool); ok {
				res.Strict = b
				res.strict = &b
			}
		case "store":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "backend":
						if s, ok := v.(string); ok {
							res.Store.Backend = s
						}
					case "path":
						if s, ok := v.(string); ok {
							res.Store.Path = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
					}
				}
			}
		case "log":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "level":
						if s, ok := v.(string); ok {
							res.Log.Level = s
						}
					case "dir":
						if s, ok := v.(string); ok {
							res.Log.Dir = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
					}
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges a file config over base, with override taking precedence
// for every key the file sets.
func mergeConfigs(base *domain.Config, override *fileConfig) *domain.Config {
	result := &domain.Config{
		Store:    base.Store,
		Log:      base.Log,
		Strict:   base.Strict,
		Loaded:   append([]string{}, base.Loaded...),
		Warnings: append([]string{}, base.Warnings...),
	}

	// Add override warnings
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.Dir != "" {
		result.Log.Dir = override.Log.Dir
	}
	if override.strict != nil {
		result.Strict = *override.strict
	}

	return result
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for edd. Every field is optional; command
// line flags always take precedence over it.
type Config struct {
	General   GeneralConfig   `json:"general" yaml:"general"`
	Defaults  DefaultsConfig  `json:"defaults" yaml:"defaults"`
	Functions FunctionsConfig `json:"functions" yaml:"functions"`
}

type GeneralConfig struct {
	LogLevel string `json:"logLevel" yaml:"logLevel"`
	LogFile  string `json:"logFile,omitempty" yaml:"logFile,omitempty"` // optional log file path
	Output   string `json:"output,omitempty" yaml:"output,omitempty"`   // default for -o
}

// DefaultsConfig pre-fills argument bag fields the user did not pass.
type DefaultsConfig struct {
	Threads    int    `json:"threads,omitempty" yaml:"threads,omitempty"`
	DomainName string `json:"domainName,omitempty" yaml:"domainName,omitempty"`
	UserName   string `json:"userName,omitempty" yaml:"userName,omitempty"`
}

type FunctionsConfig struct {
	Disabled []string `json:"disabled,omitempty" yaml:"disabled,omitempty"` // left out of the registry
}

// DefaultConfigDir returns the default config directory (~/.edd).
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".edd"
	}
	return filepath.Join(home, ".edd")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Load reads a config file. Files ending in .json are parsed as JSON,
// anything else as YAML.
func Load(path string) (*Config, error) {
	path = ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	// Substitute environment variables: ${VAR} and ${VAR:-default}
	data = []byte(ExpandEnvVars(string(data)))

	cfg := Defaults()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	cfg.General.LogFile = ExpandPath(cfg.General.LogFile)
	cfg.General.Output = ExpandPath(cfg.General.Output)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields Defaults.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns in config strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-(.*?))?\}`)

// ExpandEnvVars replaces ${VAR} with the environment variable value.
// ${VAR:-default} uses "default" when VAR is unset or empty; an unset VAR
// without a default is left as is.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		hasDefault := len(groups) >= 3 && groups[2] != ""

		val, exists := os.LookupEnv(groups[1])
		if !exists || val == "" {
			if hasDefault {
				return groups[2]
			}
			return match
		}
		return val
	})
}

// Validate checks that the config has valid values.
func Validate(cfg *Config) error {
	var errs []string

	if _, err := ParseLevel(cfg.General.LogLevel); err != nil {
		errs = append(errs, "general.logLevel must be one of: debug, info, warn, error")
	}
	if cfg.Defaults.Threads < 0 || cfg.Defaults.Threads > 1024 {
		errs = append(errs, "defaults.threads must be between 0 and 1024")
	}
	for i, name := range cfg.Functions.Disabled {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Sprintf("functions.disabled[%d] is empty", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ParseLevel maps a config log level to a slog level. Empty means warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
}

// ExpandPath resolves ~/ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "ANDOCHECK_"

// Configuration represents the andocheck CLI configuration
type Configuration struct {
	Ruleset      string        `koanf:"ruleset" validate:"required_without=RulesFile"`
	RulesFile    string        `koanf:"rules_file"`
	Anchored     bool          `koanf:"anchored"`
	Format       string        `koanf:"format" validate:"oneof=text json table"`
	StrictExit   bool          `koanf:"strict_exit"`
	StateDir     string        `koanf:"state_dir" validate:"required"`
	MaxHistory   int           `koanf:"max_history" validate:"min=0,max=100000"`
	Concurrency  int           `koanf:"concurrency" validate:"min=1,max=64"`
	LogLevel     string        `koanf:"log_level" validate:"oneof=debug info warn error"`
	ShowProgress bool          `koanf:"show_progress"` // Spinner on stderr while walking (TTY only)
	Debounce     time.Duration `koanf:"debounce"`      // Quiet period before watch mode re-validates
}

// flagKeys maps CLI flag names that differ from their configuration key.
var flagKeys = map[string]string{
	"rules": "rules_file",
}

// Load loads configuration from defaults, global and local files, environment
// variables and explicitly set flags, in increasing order of priority.
// flags may be nil.
func Load(localConfigPath string, flags *pflag.FlagSet) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if globalPath, err := UserConfigPath(); err == nil {
		if err := loadFile(k, globalPath); err != nil {
			return nil, fmt.Errorf("failed to load global config: %w", err)
		}
	}

	if localConfigPath != "" {
		if err := loadFile(k, localConfigPath); err != nil {
			return nil, fmt.Errorf("failed to load local config: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagTransform(flags)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	format, err := NormalizeOutputFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	cfg.Format = string(format)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Debounce < 0 {
		return nil, fmt.Errorf("config validation failed: debounce must not be negative")
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)
	cfg.RulesFile = expandHomePath(cfg.RulesFile)

	return &cfg, nil
}

// loadFile merges a YAML or JSON file into k. Missing files are skipped.
func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return k.Load(file.Provider(path), json.Parser())
	}
	if err := ValidateYAMLSyntax(path); err != nil {
		return err
	}
	return k.Load(file.Provider(path), yaml.Parser())
}

// flagTransform maps changed flags that correspond to a known key.
// Everything else is skipped so unset flags never shadow files or environment.
func flagTransform(flags *pflag.FlagSet) func(f *pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		key, ok := flagKeys[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
		}
		if _, known := KnownKeys[key]; !known {
			return "", nil
		}
		return key, posflag.FlagVal(flags, f)
	}
}

// envTransform converts environment variable names to config keys
// Example: ANDOCHECK_MAX_HISTORY -> max_history
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// SlogLevel returns the configured log level, defaulting to warn.
func (c *Configuration) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

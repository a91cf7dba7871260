// Package config resolves CLI settings from defaults, an optional config
// file, JSONQ_* environment variables and command-line flags, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/vegasq/jsonq/output"
	"github.com/vegasq/jsonq/reader"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "JSONQ_"

// ErrInvalidConfig is returned when a resolved setting is out of range
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the resolved settings of one CLI run.
type Config struct {
	Format  string    `mapstructure:"format"`
	Pretty  bool      `mapstructure:"pretty"`
	Limit   int       `mapstructure:"limit"`
	Input   string    `mapstructure:"input"`
	Root    string    `mapstructure:"root"`
	Workers int       `mapstructure:"workers"`
	Log     LogConfig `mapstructure:"log"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Options describe the sources Load reads from.
type Options struct {
	// File is an optional config file in any format viper reads
	File string

	// Defaults override the built-in defaults, e.g. values that depend on
	// the terminal
	Defaults map[string]interface{}

	// Overrides hold explicitly set flags and win over every other source
	Overrides map[string]interface{}

	// Environ replaces os.Environ when set
	Environ []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("format", "json")
	v.SetDefault("pretty", false)
	v.SetDefault("limit", 0)
	v.SetDefault("input", string(reader.FormatAuto))
	v.SetDefault("root", "")
	v.SetDefault("workers", 4)
	v.SetDefault("log.level", "WARN")
	v.SetDefault("log.format", "text")
}

// Load resolves the configuration described by opts.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, val := range opts.Defaults {
		v.SetDefault(key, val)
	}

	// 1. Config file, when given, must exist and parse
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.File, err)
		}
	}

	// 2. Environment variables: JSONQ_LOG_LEVEL -> log.level
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	for _, envStr := range environ {
		pair := strings.SplitN(envStr, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], EnvPrefix) {
			continue
		}
		propKey := strings.TrimPrefix(pair[0], EnvPrefix)
		propKey = strings.ToLower(strings.ReplaceAll(propKey, "_", "."))
		if propKey == "" {
			continue
		}
		v.Set(propKey, pair[1])
	}

	// 3. Flags
	for key, val := range opts.Overrides {
		v.Set(key, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("%w: limit must be non-negative, got %d", ErrInvalidConfig, c.Limit)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if !knownOutput(c.Format) {
		return fmt.Errorf("%w: unknown output format %q (supported: %s)",
			ErrInvalidConfig, c.Format, strings.Join(output.Formats, ", "))
	}
	if _, err := reader.ParseFormat(c.Input); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func knownOutput(name string) bool {
	for _, f := range output.Formats {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}

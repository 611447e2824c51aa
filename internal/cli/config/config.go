// Package config loads qfault CLI settings.
//
// Precedence (highest first): explicitly set flags, QFAULT_* environment
// variables, the config file (./qfault.yaml unless --config is given),
// built-in defaults.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Defaults.
const (
	DefaultConfigFile = "qfault.yaml"
	DefaultOutput     = "table"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
	EnvPrefix         = "QFAULT_"
)

// Config is the merged CLI configuration.
type Config struct {
	Data            string  `koanf:"data"`
	Flag            string  `koanf:"flag"`
	Distance        int     `koanf:"distance"`
	Threshold       int     `koanf:"threshold"`
	Exponent        float64 `koanf:"exponent"`
	FlagMode        string  `koanf:"flag_mode"`
	Injection       string  `koanf:"injection"`
	SiteScope       string  `koanf:"site_scope"`
	CollapseSites   bool    `koanf:"collapse_sites"`
	Workers         int     `koanf:"workers"`
	Strategy        string  `koanf:"strategy"`
	Output          string  `koanf:"output"`
	LogLevel        string  `koanf:"log_level"`
	LogFormat       string  `koanf:"log_format"`
	MetricsOut      string  `koanf:"metrics_out"`
	Seed            int64   `koanf:"seed"`
	FailOnViolation bool    `koanf:"fail_on_violation"`

	// FileUsed is the config file that was read, empty if none.
	FileUsed string `koanf:"-"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"data":              "",
		"flag":              "",
		"distance":          0,
		"threshold":         -1,
		"exponent":          1.0,
		"flag_mode":         "x-only",
		"injection":         "after",
		"site_scope":        "data",
		"collapse_sites":    false,
		"workers":           0,
		"strategy":          "independent",
		"output":            DefaultOutput,
		"log_level":         DefaultLogLevel,
		"log_format":        DefaultLogFormat,
		"metrics_out":       "",
		"seed":              1,
		"fail_on_violation": false,
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	k := koanf.New(".")
	_ = k.Load(confmap.Provider(defaults(), "."), nil)
	var cfg Config
	_ = k.Unmarshal("", &cfg)

	return &cfg
}

// Load merges defaults, cfgFile (or ./qfault.yaml when present), QFAULT_*
// environment variables and the flags in fs that were explicitly set.
// Flag names are kebab-case versions of the keys.
func Load(cfgFile string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := cfgFile
	if used == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			used = DefaultConfigFile
		}
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// QFAULT_FLAG_MODE -> flag_mode
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if fs != nil {
		if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(fs, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

type contextKey struct{}

type loggerKey struct{}

// WithContext stores cfg and logger on ctx.
func WithContext(ctx context.Context, cfg *Config, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, contextKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the stored config, or one built from defaults.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(contextKey{}).(*Config); ok {
		return c
	}

	return Default()
}

// Logger returns the stored logger, or a discarding one.
func Logger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}

	return slog.New(slog.DiscardHandler)
}

// Package config loads minipack settings from defaults, an optional
// minipack.toml file and MINIPACK_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/LegacyCodeHQ/minipack/depgraph"
)

const (
	// FileName is the config file looked up in the working directory.
	FileName = "minipack.toml"
	// EnvPrefix prefixes every environment override, e.g. MINIPACK_DEDUPE.
	EnvPrefix = "MINIPACK"
)

// Config holds the settings shared by the build commands.
type Config struct {
	OutFile      string   `mapstructure:"out_file" toml:"out_file"`
	Dedupe       bool     `mapstructure:"dedupe" toml:"dedupe"`
	CacheModules bool     `mapstructure:"cache_modules" toml:"cache_modules"`
	Extensions   []string `mapstructure:"extensions" toml:"extensions"`
	MaxAssets    int      `mapstructure:"max_assets" toml:"max_assets"`
	Verbose      bool     `mapstructure:"verbose" toml:"verbose"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Extensions: []string{},
		MaxAssets:  depgraph.DefaultMaxAssets,
	}
}

// LoadOptions select where configuration is read from.
type LoadOptions struct {
	// ConfigFilePath, when set, must exist and is read instead of FileName.
	ConfigFilePath string
	// Dir is searched for FileName. Defaults to the working directory.
	Dir string
}

// Load resolves configuration and returns it with the path of the file
// that was read, or "" when only defaults and environment applied.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("load config canceled: %w", err)
	}

	v := viper.New()
	defaults := Default()
	v.SetDefault("out_file", defaults.OutFile)
	v.SetDefault("dedupe", defaults.Dedupe)
	v.SetDefault("cache_modules", defaults.CacheModules)
	v.SetDefault("extensions", defaults.Extensions)
	v.SetDefault("max_assets", defaults.MaxAssets)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("toml")
	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", fmt.Errorf("config file not found: %s", opts.ConfigFilePath)
		}
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config %s: %w", opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		v.SetConfigName(strings.TrimSuffix(FileName, ".toml"))
		v.AddConfigPath(dir)
		err := v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		switch {
		case err == nil:
			resolvedPath = v.ConfigFileUsed()
		case errors.As(err, &notFound):
			// defaults and environment only
		default:
			return nil, "", fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MaxAssets < 0 {
		return nil, "", fmt.Errorf("max_assets must not be negative, got %d", cfg.MaxAssets)
	}
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return nil, "", fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return &cfg, resolvedPath, nil
}

// TOML renders cfg in the format read by Load.
func TOML(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return string(data), nil
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the config stored in ctx, or Default.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(contextKey{}).(*Config); ok && cfg != nil {
		return cfg
	}
	return Default()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Package config loads pmsatom settings from defaults, an optional YAML
// config file, PMSATOM_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "pmsatom"
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "PMSATOM"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "yaml"
)

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "yaml"}

// Config is the resolved pmsatom configuration.
type Config struct {
	Format  string      `mapstructure:"format"`
	Verbose bool        `mapstructure:"verbose"`
	Check   CheckConfig `mapstructure:"check"`
}

// CheckConfig holds the atom list policy used by "pmsatom check".
type CheckConfig struct {
	NoBlockers     bool `mapstructure:"no_blockers"`
	RequireVersion bool `mapstructure:"require_version"`
	MaxErrors      int  `mapstructure:"max_errors"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{Format: "text"}
}

// Options controls where Load looks for settings.
type Options struct {
	// ConfigFilePath, when set, is the only config file read and must exist.
	ConfigFilePath string
	// ConfigDirPath overrides the platform config directory.
	ConfigDirPath string
	// Flags maps config keys to the flags that override them.
	Flags map[string]*pflag.Flag
}

// ConfigDir returns the pmsatom configuration directory, e.g.
// $XDG_CONFIG_HOME/pmsatom on Linux.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}

// Load resolves the configuration. It returns the config and the path of the
// file it was read from, or "" when only defaults, environment and flags
// applied.
func Load(opts Options) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("format", defaults.Format)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("check.no_blockers", defaults.Check.NoBlockers)
	v.SetDefault("check.require_version", defaults.Check.RequireVersion)
	v.SetDefault("check.max_errors", defaults.Check.MaxErrors)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, "", fmt.Errorf("bind flag %q: %w", flag.Name, err)
		}
	}

	resolvedPath, err := findConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		v.SetConfigFile(resolvedPath)
		v.SetConfigType(ConfigFileExt)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read config file %s: %w", resolvedPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolvedPath, nil
}

// findConfigFile returns the config file to read, or "" when there is none.
// An explicit path must exist; the config directory and the working
// directory are searched otherwise.
func findConfigFile(opts Options) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", fmt.Errorf("config file not found: %s", opts.ConfigFilePath)
		}
		return opts.ConfigFilePath, nil
	}

	dir := opts.ConfigDirPath
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			// No home directory: fall back to the working directory only.
			dir = ""
		}
	}
	name := ConfigFileName + "." + ConfigFileExt
	if dir != "" {
		if p := filepath.Join(dir, name); fileExists(p) {
			return p, nil
		}
	}
	if fileExists(name) {
		return name, nil
	}
	return "", nil
}

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("unsupported format %q, want one of %s", c.Format, strings.Join(Formats, ", ")))
	}
	if c.Check.MaxErrors < 0 {
		errs = append(errs, errors.New("check.max_errors must not be negative"))
	}
	return errors.Join(errs...)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

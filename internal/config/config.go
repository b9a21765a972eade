// Package config loads tackle's settings from tackle.yaml and TACKLE_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names
const (
	BackendSQLite = "sqlite"
	BackendDiskv  = "diskv"
)

// Config holds application configuration
type Config struct {
	DataDir       string `mapstructure:"data_dir"`
	Backend       string `mapstructure:"backend"`
	Notifications bool   `mapstructure:"notifications"`
	Theme         string `mapstructure:"theme"`
	DebugIDs      bool   `mapstructure:"debug_ids"`

	// File is the config file that was read, empty when none was found
	File string `mapstructure:"-"`
}

// New returns a viper instance with tackle's defaults, search paths and
// environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("data_dir", "~/.local/share/tackle")
	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("notifications", true)
	v.SetDefault("theme", "nord")
	v.SetDefault("debug_ids", false)

	v.SetConfigName("tackle") // .yaml is implicit
	v.SetEnvPrefix("TACKLE")
	v.AutomaticEnv()

	if override := os.Getenv("TACKLE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "tackle"))
	}
	v.AddConfigPath(".")
	return v
}

// Load reads the config file, if any, and returns the resolved settings
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	dir, err := homedir.Expand(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("invalid data_dir %q: %w", cfg.DataDir, err)
	}
	cfg.DataDir = dir

	switch cfg.Backend {
	case BackendSQLite, BackendDiskv:
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s or %s)", cfg.Backend, BackendSQLite, BackendDiskv)
	}
	return &cfg, nil
}

// ABOUTME: Configuration loading for the gatekey CLI
// ABOUTME: Reads an optional YAML file from the XDG config dir with GATEKEY_ env overrides

package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultAPIURL is used when no flag, env var, or config file provides one
const DefaultAPIURL = "http://localhost:3000"

// Config holds the CLI settings. The API base URL is the only value the
// core contract needs; the rest is quality-of-life.
type Config struct {
	APIURL         string `mapstructure:"api_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	Debug          bool   `mapstructure:"debug"`
}

// DefaultConfigDir returns the config directory following the XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gatekey")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gatekey")
}

// Load reads config.yaml from dir, if present. A missing file is not an
// error; env vars prefixed GATEKEY_ override file values either way.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("gatekey")
	v.AutomaticEnv()

	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

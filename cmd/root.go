// ABOUTME: Root command for the gatekey CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gatekeyhq/gatekey-cli/internal/client"
	"github.com/gatekeyhq/gatekey-cli/internal/config"
)

var (
	apiURL     string
	jsonOutput bool
)

var cfg *config.Config

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "gatekey",
	Short: "CLI for the Gatekey account service",
	Long: `gatekey is a terminal client for the Gatekey account service.

It signs in to or registers an account against the auth API, either through
an interactive screen (gatekey auth) or non-interactively for scripting
(gatekey login, gatekey register).

Environment Variables:
  GATEKEY_API_URL  Auth API base URL (default: http://localhost:3000)
  GATEKEY_DEBUG    Enable the debug log in the config directory`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Auth API base URL (overrides GATEKEY_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadedConfig loads the config file once; a broken file degrades to defaults
func loadedConfig() *config.Config {
	if cfg == nil {
		c, err := config.Load(config.DefaultConfigDir())
		if err != nil {
			c = &config.Config{APIURL: config.DefaultAPIURL}
		}
		cfg = c
	}
	return cfg
}

// GetAPIURL returns the API URL from flag, env, config file, or default
// (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("GATEKEY_API_URL"); envURL != "" {
		return envURL
	}
	if url := loadedConfig().APIURL; url != "" {
		return url
	}
	return config.DefaultAPIURL
}

// requestTimeout returns the per-request timeout from the config file
func requestTimeout() time.Duration {
	if secs := loadedConfig().TimeoutSeconds; secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return client.DefaultTimeout
}

// newAPIClient builds the API client from the resolved URL and timeout
func newAPIClient() *client.Client {
	return client.NewWithTimeout(GetAPIURL(), requestTimeout())
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

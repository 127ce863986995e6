// ABOUTME: Interactive authentication command
// ABOUTME: Launches the TUI sign-in / registration screen

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gatekeyhq/gatekey-cli/internal/client"
	"github.com/gatekeyhq/gatekey-cli/internal/config"
	"github.com/gatekeyhq/gatekey-cli/internal/debuglog"
	"github.com/gatekeyhq/gatekey-cli/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in or create an account interactively",
	Long: `Open the interactive authentication screen.

The screen toggles between sign-in and registration (Ctrl+T), validates
input as you type, and submits to the configured auth API. With --json the
authentication result is printed on exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loadedConfig().Debug || os.Getenv("GATEKEY_DEBUG") != "" {
			if err := debuglog.Init(config.DefaultConfigDir()); err == nil {
				defer debuglog.Close()
			}
		}

		c := newAPIClient()

		// The success handler is fire-and-forget; we only capture the
		// response so it can be printed after the program exits.
		var result *client.AuthResponse
		err := tui.Run(c, func(resp *client.AuthResponse) {
			result = resp
			debuglog.Log("authenticated against %s", c.BaseURL())
		})
		if err != nil {
			return err
		}

		if result != nil && IsJSONOutput() {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(data))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}

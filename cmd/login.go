// ABOUTME: Non-interactive login command
// ABOUTME: Signs in with flags or minimal prompts, for scripting and CI

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/gatekeyhq/gatekey-cli/internal/client"
	"github.com/gatekeyhq/gatekey-cli/internal/form"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to an existing account",
	Long: `Sign in without the interactive screen.

Missing credentials are prompted for (password input is hidden). Prefer the
prompt over --password so the secret stays out of shell history.

Exit codes:
  0 - Authenticated
  1 - The server rejected the credentials
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := promptLogin(&loginEmail, &loginPassword); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runLogin(ctx, newAPIClient(), os.Stdout, loginEmail, loginPassword, IsJSONOutput())
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
}

// promptLogin asks for whichever credentials were not given as flags
func promptLogin(email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Validate(validateEmail).
			Value(email))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(validatePassword).
			Value(password))
	}
	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeBase()).Run()
}

// runLogin executes the login and returns the exit code
func runLogin(ctx context.Context, c *client.Client, w io.Writer, email, password string, jsonOut bool) int {
	state := form.State{Mode: form.ModeLogin, Email: email, Password: password}
	if !state.CanSubmit() {
		fmt.Fprintln(w, "Error: need a valid email and a password of at least 6 characters")
		return 2
	}

	resp, err := c.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return 1
		}
		return 2
	}

	if jsonOut {
		fmt.Fprintln(w, formatAuthJSON(resp))
	} else {
		fmt.Fprintln(w, formatAuthHuman(resp, "Connected as "+email))
	}

	return 0
}

// validateEmail mirrors the form screen's predicate so the two surfaces
// accept the same input
func validateEmail(s string) error {
	if !form.ValidEmail(s) {
		return fmt.Errorf("must look like an email address")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < form.MinPasswordLen {
		return fmt.Errorf("must be at least %d characters", form.MinPasswordLen)
	}
	return nil
}

// formatAuthHuman formats an auth response for human readability
func formatAuthHuman(resp *client.AuthResponse, headline string) string {
	return fmt.Sprintf(`✓ %s
Access token:  %s
Refresh token: %s`,
		headline,
		maskToken(resp.AccessToken),
		maskToken(resp.RefreshToken))
}

// formatAuthJSON formats an auth response as JSON
func formatAuthJSON(resp *client.AuthResponse) string {
	data, _ := json.MarshalIndent(resp, "", "  ")
	return string(data)
}

// maskToken keeps just enough of a token to recognize it in output
func maskToken(token string) string {
	if token == "" {
		return "(none)"
	}
	if len(token) <= 8 {
		return "••••"
	}
	return token[:4] + "…" + token[len(token)-4:]
}

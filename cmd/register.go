// ABOUTME: Non-interactive registration command
// ABOUTME: Creates an account with flags or minimal prompts

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/gatekeyhq/gatekey-cli/internal/client"
	"github.com/gatekeyhq/gatekey-cli/internal/form"
)

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create an account without the interactive screen.

Missing fields are prompted for; when the password is prompted, a hidden
confirmation prompt guards against typos.

Exit codes:
  0 - Account created
  1 - The server rejected the registration
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := promptRegister(&registerName, &registerEmail, &registerPassword); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runRegister(ctx, newAPIClient(), os.Stdout, registerName, registerEmail, registerPassword, IsJSONOutput())
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted when omitted)")
}

// promptRegister asks for whichever fields were not given as flags. A
// confirmation prompt is only added when the password itself is prompted.
func promptRegister(name, email, password *string) error {
	promptedPassword := *password == ""

	var fields []huh.Field
	if *name == "" {
		fields = append(fields, huh.NewInput().
			Title("Name").
			Validate(validateName).
			Value(name))
	}
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Validate(validateEmail).
			Value(email))
	}
	if promptedPassword {
		var confirm string
		fields = append(fields,
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(validatePassword).
				Value(password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if s != *password {
						return fmt.Errorf("passwords do not match")
					}
					return nil
				}).
				Value(&confirm))
	}
	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeBase()).Run()
}

// runRegister executes the registration and returns the exit code
func runRegister(ctx context.Context, c *client.Client, w io.Writer, name, email, password string, jsonOut bool) int {
	state := form.State{
		Mode:            form.ModeRegister,
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	}
	if !state.CanSubmit() {
		fmt.Fprintln(w, "Error: need a name, a valid email, and a password of at least 6 characters")
		return 2
	}

	resp, err := c.Register(ctx, name, email, password)
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
		fmt.Fprintln(w, formatAuthHuman(resp, "Account created for "+strings.TrimSpace(name)))
	}

	return 0
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("name cannot be blank")
	}
	return nil
}

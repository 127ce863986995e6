// ABOUTME: Credential form state machine shared by the TUI screen and CLI commands
// ABOUTME: Owns mode toggling, submit validation, and the submit lifecycle

package form

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gatekeyhq/gatekey-cli/internal/client"
)

// Mode selects between the two form configurations
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// String returns the string representation of a Mode
func (m Mode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

// MinPasswordLen is the minimum accepted password length
const MinPasswordLen = 6

// FallbackErrMessage is shown when a failure carries no message of its own
const FallbackErrMessage = "cannot reach server"

// Deliberately loose: one non-whitespace run, an @, another run, a dot, a
// trailing run. Real validation belongs to the server.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidEmail reports whether s looks like an email address
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// State holds the credential form fields and submit lifecycle flags.
// It is created when the screen mounts and discarded with it; nothing
// is persisted here.
type State struct {
	Mode            Mode
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Submitting      bool
	ErrMessage      string
	Notice          string
}

// SwitchMode toggles between login and register. The error message is
// cleared; field values deliberately survive the switch.
func (s *State) SwitchMode() {
	if s.Mode == ModeLogin {
		s.Mode = ModeRegister
	} else {
		s.Mode = ModeLogin
	}
	s.ErrMessage = ""
}

// TrimmedName returns the name as it would be sent to the server
func (s *State) TrimmedName() string {
	return strings.TrimSpace(s.Name)
}

// CanSubmit is the predicate gating the submit control. Login mode needs a
// plausible email and a long-enough password; register mode additionally
// needs a non-blank name and a byte-for-byte password confirmation.
func (s *State) CanSubmit() bool {
	if !ValidEmail(s.Email) || len(s.Password) < MinPasswordLen {
		return false
	}
	if s.Mode == ModeRegister {
		if s.TrimmedName() == "" {
			return false
		}
		if s.ConfirmPassword != s.Password {
			return false
		}
	}
	return true
}

// BeginSubmit marks a submission in flight. It returns false (and does
// nothing) when the form is invalid or a submission is already outstanding,
// which is what makes a second submit a no-op.
func (s *State) BeginSubmit() bool {
	if s.Submitting || !s.CanSubmit() {
		return false
	}
	s.Submitting = true
	s.ErrMessage = ""
	s.Notice = ""
	return true
}

// Finish completes the submit lifecycle. Submitting is always cleared no
// matter which path produced the result. On failure the error message is
// derived from err; on success the password fields are reset (email and
// name are retained) and a one-time notice is set by mode.
func (s *State) Finish(err error) {
	s.Submitting = false

	if err != nil {
		s.ErrMessage = messageFrom(err)
		return
	}

	s.Password = ""
	s.ConfirmPassword = ""
	if s.Mode == ModeRegister {
		s.Notice = "Account created"
	} else {
		s.Notice = "Connected"
	}
}

// messageFrom extracts the user-visible text for a failed submit. Server
// rejections surface their message verbatim; transport failures surface the
// wrapped error text, falling back to a generic string.
func messageFrom(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackErrMessage
}

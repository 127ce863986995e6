// ABOUTME: Authentication form as a bubbletea model
// ABOUTME: Toggles between sign-in and registration, validates input, and submits credentials

package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gatekeyhq/gatekey-cli/internal/client"
	"github.com/gatekeyhq/gatekey-cli/internal/debuglog"
	"github.com/gatekeyhq/gatekey-cli/internal/form"
	"github.com/gatekeyhq/gatekey-cli/internal/tui/icons"
	"github.com/gatekeyhq/gatekey-cli/internal/tui/styles"
)

// Field indices into the inputs array
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldCount
)

// SucceededMsg is sent to the parent when authentication succeeds
type SucceededMsg struct {
	Resp   *client.AuthResponse
	Notice string
	Email  string
}

// CancelledMsg is sent when the user backs out of the form
type CancelledMsg struct{}

// resultMsg carries the outcome of an in-flight submit back to the model
type resultMsg struct {
	resp *client.AuthResponse
	err  error
}

// Form is the authentication screen model. The submit request runs as a
// tea.Cmd so the event loop keeps processing input; the submit control
// itself is gated by the form state's re-entrancy guard.
type Form struct {
	client *client.Client
	state  *form.State
	inputs [fieldCount]textinput.Model
	focus  int
	width  int
}

// New creates the form in login mode, optionally prefilled with an email
func New(c *client.Client, prefillEmail string) *Form {
	name := textinput.New()
	name.Placeholder = "Ada Lovelace"
	name.CharLimit = 64
	name.Prompt = ""

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Prompt = ""
	email.SetValue(prefillEmail)

	password := textinput.New()
	password.Placeholder = "at least 6 characters"
	password.CharLimit = 128
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	confirm := textinput.New()
	confirm.Placeholder = "repeat password"
	confirm.CharLimit = 128
	confirm.Prompt = ""
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'

	f := &Form{
		client: c,
		state:  &form.State{Mode: form.ModeLogin, Email: prefillEmail},
		focus:  fieldEmail,
	}
	f.inputs[fieldName] = name
	f.inputs[fieldEmail] = email
	f.inputs[fieldPassword] = password
	f.inputs[fieldConfirm] = confirm
	f.inputs[f.focus].Focus()

	return f
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// visibleFields returns the traversal order for the current mode
func (f *Form) visibleFields() []int {
	if f.state.Mode == form.ModeRegister {
		return []int{fieldName, fieldEmail, fieldPassword, fieldConfirm}
	}
	return []int{fieldEmail, fieldPassword}
}

// lastField is the field whose enter key triggers the submit
func (f *Form) lastField() int {
	if f.state.Mode == form.ModeRegister {
		return fieldConfirm
	}
	return fieldPassword
}

// syncState copies input widget values into the form state
func (f *Form) syncState() {
	f.state.Name = f.inputs[fieldName].Value()
	f.state.Email = f.inputs[fieldEmail].Value()
	f.state.Password = f.inputs[fieldPassword].Value()
	f.state.ConfirmPassword = f.inputs[fieldConfirm].Value()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		return f, nil

	case resultMsg:
		return f.handleResult(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return f, func() tea.Msg { return CancelledMsg{} }

		case "ctrl+t":
			f.toggleMode()
			return f, nil

		case "enter":
			f.syncState()
			if f.focus == f.lastField() {
				return f, f.submit()
			}
			f.moveFocus(1)
			return f, nil

		case "tab", "down":
			f.syncState()
			f.moveFocus(1)
			return f, nil

		case "shift+tab", "up":
			f.syncState()
			f.moveFocus(-1)
			return f, nil
		}
	}

	// Everything else goes to the focused input
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.syncState()
	return f, cmd
}

// toggleMode switches login/register. The error message is cleared but
// field values survive the switch.
func (f *Form) toggleMode() {
	f.state.SwitchMode()

	// Focus may be on a field the new mode hides
	for _, id := range f.visibleFields() {
		if id == f.focus {
			return
		}
	}
	f.setFocus(fieldEmail)
}

// moveFocus advances or retreats focus within the visible fields, wrapping
func (f *Form) moveFocus(delta int) {
	fields := f.visibleFields()
	pos := 0
	for i, id := range fields {
		if id == f.focus {
			pos = i
			break
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	f.setFocus(fields[pos])
}

func (f *Form) setFocus(id int) {
	f.inputs[f.focus].Blur()
	f.focus = id
	f.inputs[f.focus].Focus()
}

// submit kicks off the request when the guard allows it. A submit while one
// is in flight, or while the form is invalid, is a no-op.
func (f *Form) submit() tea.Cmd {
	if !f.state.BeginSubmit() {
		return nil
	}

	mode := f.state.Mode
	name := f.state.TrimmedName()
	email := f.state.Email
	password := f.state.Password
	c := f.client

	return func() tea.Msg {
		var resp *client.AuthResponse
		var err error
		if mode == form.ModeRegister {
			resp, err = c.Register(context.Background(), name, email, password)
		} else {
			resp, err = c.Login(context.Background(), email, password)
		}
		return resultMsg{resp: resp, err: err}
	}
}

// handleResult completes the submit lifecycle for both outcomes
func (f *Form) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	f.state.Finish(msg.err)

	if msg.err != nil {
		debuglog.Error("submit", msg.err)
		return f, nil
	}

	// Password fields are cleared on success; email and name are kept
	f.inputs[fieldPassword].SetValue("")
	f.inputs[fieldConfirm].SetValue("")

	notice := f.state.Notice
	email := f.state.Email
	resp := msg.resp
	return f, func() tea.Msg {
		return SucceededMsg{Resp: resp, Notice: notice, Email: email}
	}
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder

	if f.state.Mode == form.ModeRegister {
		sb.WriteString(styles.Title.Render(icons.App.String() + " Create account"))
	} else {
		sb.WriteString(styles.Title.Render(icons.App.String() + " Sign in"))
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("ctrl+t to switch between sign in and registration"))
	sb.WriteString("\n\n")

	labels := map[int]string{
		fieldName:     "Name",
		fieldEmail:    "Email",
		fieldPassword: "Password",
		fieldConfirm:  "Confirm password",
	}

	for _, id := range f.visibleFields() {
		label := labels[id]
		if id == f.focus {
			sb.WriteString(styles.FocusedLabel.Render("▸ " + label))
		} else {
			sb.WriteString(styles.Label.Render("  " + label))
		}
		sb.WriteString("\n  ")
		sb.WriteString(f.inputs[id].View())
		sb.WriteString("\n\n")
	}

	if f.state.ErrMessage != "" {
		sb.WriteString(styles.StatusCritical.Render(icons.Critical.String() + " " + f.state.ErrMessage))
		sb.WriteString("\n\n")
	}

	sb.WriteString(f.renderSubmit())

	if f.state.Mode == form.ModeLogin {
		// TODO: wire a forgot-password flow once the /auth/recover endpoint ships
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("Forgot password? Not available yet."))
	}

	return sb.String()
}

// renderSubmit draws the submit control, disabled whenever the validation
// predicate fails or a submission is in flight
func (f *Form) renderSubmit() string {
	label := "Sign in"
	if f.state.Mode == form.ModeRegister {
		label = "Create account"
	}
	if f.state.Submitting {
		return styles.ButtonDisabled.Render(label + "…")
	}
	if !f.state.CanSubmit() {
		return styles.ButtonDisabled.Render(label)
	}
	return styles.ButtonEnabled.Render(label)
}

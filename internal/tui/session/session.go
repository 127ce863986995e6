// ABOUTME: Post-authentication summary screen
// ABOUTME: Renders the decoded auth response with tokens masked

package session

import (
	"bytes"
	"encoding/json"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gatekeyhq/gatekey-cli/internal/client"
	"github.com/gatekeyhq/gatekey-cli/internal/tui/icons"
	"github.com/gatekeyhq/gatekey-cli/internal/tui/styles"
)

// BackMsg is sent when the user returns to the auth form
type BackMsg struct{}

// Session displays the result of a successful authentication. It never
// persists anything; the tokens live only as long as the screen.
type Session struct {
	resp   *client.AuthResponse
	notice string
	width  int
}

// New creates the session view with a one-time confirmation notice
func New(resp *client.AuthResponse, notice string, width int) *Session {
	return &Session{resp: resp, notice: notice, width: width}
}

// SetWidth updates the render width
func (s *Session) SetWidth(width int) {
	s.width = width
}

// Init implements tea.Model
func (s *Session) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "b", "esc":
			return s, func() tea.Msg { return BackMsg{} }
		}
	}
	return s, nil
}

// View implements tea.Model
func (s *Session) View() string {
	var sb strings.Builder

	if s.notice != "" {
		sb.WriteString(styles.StatusOK.Render(icons.CheckOK.String() + " " + s.notice))
		sb.WriteString("\n\n")
	}

	sb.WriteString(styles.Label.Render("Access token"))
	sb.WriteString("\n  ")
	sb.WriteString(styles.ValueStyle.Render(icons.Token.String() + " " + maskToken(s.resp.AccessToken)))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Label.Render("Refresh token"))
	sb.WriteString("\n  ")
	sb.WriteString(styles.ValueStyle.Render(icons.Token.String() + " " + maskToken(s.resp.RefreshToken)))
	sb.WriteString("\n")

	if user := formatUser(s.resp.User); user != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Label.Render(icons.User.String() + " Account"))
		sb.WriteString("\n")
		sb.WriteString(user)
		sb.WriteString("\n")
	}

	return sb.String()
}

// maskToken keeps just enough of a token to recognize it
func maskToken(token string) string {
	if token == "" {
		return "(none)"
	}
	if len(token) <= 8 {
		return strings.Repeat("•", len(token))
	}
	return token[:4] + "…" + token[len(token)-4:]
}

// formatUser pretty-prints the opaque user record, if the server sent one
func formatUser(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "  ", "  "); err != nil {
		return "  " + string(raw)
	}
	return "  " + buf.String()
}

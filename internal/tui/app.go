// ABOUTME: Root bubbletea model for the gatekey TUI
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gatekeyhq/gatekey-cli/internal/client"
	"github.com/gatekeyhq/gatekey-cli/internal/config"
	"github.com/gatekeyhq/gatekey-cli/internal/debuglog"
	"github.com/gatekeyhq/gatekey-cli/internal/lastlogin"
	"github.com/gatekeyhq/gatekey-cli/internal/tui/icons"
	"github.com/gatekeyhq/gatekey-cli/internal/tui/login"
	"github.com/gatekeyhq/gatekey-cli/internal/tui/session"
	"github.com/gatekeyhq/gatekey-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenSession
)

// Layout constants
const (
	minTerminalWidth = 60 // Minimum width before clamping the panel
	panelPadding     = 4  // Total horizontal padding from panel borders
)

// SuccessHandler receives the decoded auth response when authentication
// succeeds. Its return is ignored; it must not block.
type SuccessHandler func(*client.AuthResponse)

// App is the root model for the TUI
type App struct {
	client    *client.Client
	screen    Screen
	width     int
	height    int
	onSuccess SuccessHandler
	lastLogin *lastlogin.Store

	// Child models
	authForm    *login.Form
	sessionView *session.Session
}

// New creates a new TUI application
func New(apiClient *client.Client, onSuccess SuccessHandler, configDir string) *App {
	store := lastlogin.New(configDir)
	return &App{
		client:    apiClient,
		screen:    ScreenAuth,
		onSuccess: onSuccess,
		lastLogin: store,
		authForm:  login.New(apiClient, store.Load()),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.authForm.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.sessionView != nil {
			a.sessionView.SetWidth(a.panelWidth())
		}
		if a.authForm != nil {
			return a.updateAuthForm(msg)
		}
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.screen {
		case ScreenAuth:
			return a.updateAuthForm(msg)
		case ScreenSession:
			return a.updateSession(msg)
		}

	case login.SucceededMsg:
		return a.handleSucceeded(msg)

	case login.CancelledMsg:
		return a, tea.Quit

	case session.BackMsg:
		// Fresh form; the successful email is kept, passwords are gone
		a.authForm = login.New(a.client, a.lastLogin.Load())
		a.sessionView = nil
		a.screen = ScreenAuth
		return a, a.authForm.Init()

	default:
		// Forward unknown messages to the form when active (cursor blink,
		// submit results)
		if a.screen == ScreenAuth && a.authForm != nil {
			return a.updateAuthForm(msg)
		}
	}

	return a, nil
}

func (a *App) updateAuthForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.authForm == nil {
		return a, nil
	}
	model, cmd := a.authForm.Update(msg)
	a.authForm = model.(*login.Form)
	return a, cmd
}

func (a *App) updateSession(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return a, tea.Quit
	}
	if a.sessionView == nil {
		return a, nil
	}
	model, cmd := a.sessionView.Update(msg)
	a.sessionView = model.(*session.Session)
	return a, cmd
}

func (a *App) handleSucceeded(msg login.SucceededMsg) (tea.Model, tea.Cmd) {
	if a.onSuccess != nil {
		a.onSuccess(msg.Resp)
	}
	if err := a.lastLogin.Save(msg.Email); err != nil {
		debuglog.Error("lastlogin save", err)
	}

	a.sessionView = session.New(msg.Resp, msg.Notice, a.panelWidth())
	a.screen = ScreenSession
	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenAuth:
		content = a.viewAuth()
	case ScreenSession:
		content = a.viewSession()
	default:
		content = a.viewAuth()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewAuth() string {
	if a.authForm == nil {
		return ""
	}
	return styles.ActivePanel.Width(a.panelWidth()).Render(a.authForm.View())
}

func (a *App) viewSession() string {
	if a.sessionView == nil {
		return ""
	}
	return styles.Panel.Width(a.panelWidth()).Render(a.sessionView.View())
}

// panelWidth clamps the main panel to the terminal width
func (a *App) panelWidth() int {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}
	return width - panelPadding
}

// renderHeader creates the header bar with app branding
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Gatekey"))

	rightText := ""
	if a.screen == ScreenSession {
		rightText = contextStyle.Render("signed in") + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenAuth:
		shortcuts = []string{"Enter Next/Submit", "Tab Next field", "Ctrl+T Switch mode", "Esc Quit"}
	case ScreenSession:
		shortcuts = []string{"b Back", "q Quit"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, styles.KeyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	fillWidth := width - 4 - lipgloss.Width(leftPlainText) // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"

	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(apiClient *client.Client, onSuccess SuccessHandler) error {
	app := New(apiClient, onSuccess, config.DefaultConfigDir())

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

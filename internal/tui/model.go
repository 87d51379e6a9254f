package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/depobill/internal/app"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenInvoice Screen = iota
	ScreenAddresses
	ScreenPrefill
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenInvoice:
		return "Invoice"
	case ScreenAddresses:
		return "Address Book"
	case ScreenPrefill:
		return "Prefill"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized, except the invoice which holds the draft)
	invoice   tea.Model
	addresses tea.Model
	prefill   tea.Model
	settings  tea.Model

	err error
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenInvoice,
		invoice:       NewInvoiceModel(a),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.invoice.Init()
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	refresh := func() tea.Msg { return RefreshDataMsg{} }
	switch screen {
	case ScreenInvoice:
		return refresh
	case ScreenAddresses:
		if m.addresses == nil {
			m.addresses = NewAddressesModel(m.app)
			return m.addresses.Init()
		}
		return refresh
	case ScreenPrefill:
		if m.prefill == nil {
			m.prefill = NewPrefillModel(m.app)
			return m.prefill.Init()
		}
		return nil
	case ScreenSettings:
		if m.settings == nil {
			m.settings = NewSettingsModel(m.app)
			return m.settings.Init()
		}
		return refresh
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys (I, A, P, ",", Q) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

func (m *Model) screen(s Screen) tea.Model {
	switch s {
	case ScreenInvoice:
		return m.invoice
	case ScreenAddresses:
		return m.addresses
	case ScreenPrefill:
		return m.prefill
	case ScreenSettings:
		return m.settings
	}
	return nil
}

func (m *Model) setScreen(s Screen, model tea.Model) {
	switch s {
	case ScreenInvoice:
		m.invoice = model
	case ScreenAddresses:
		m.addresses = model
	case ScreenPrefill:
		m.prefill = model
	case ScreenSettings:
		m.settings = model
	}
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.screen(m.currentScreen).(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// switchTo changes screen and returns the screen's init or refresh command
func (m *Model) switchTo(s Screen) tea.Cmd {
	m.currentScreen = s
	m.err = nil
	return m.initScreen(s)
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Invoice):
				return m, m.switchTo(ScreenInvoice)

			case key.Matches(msg, DefaultKeyMap.Addresses):
				return m, m.switchTo(ScreenAddresses)

			case key.Matches(msg, DefaultKeyMap.Prefill):
				return m, m.switchTo(ScreenPrefill)

			case key.Matches(msg, DefaultKeyMap.Settings):
				return m, m.switchTo(ScreenSettings)
			}
		}

	case SwitchScreenMsg:
		return m, m.switchTo(msg.Screen)

	// Results from the other screens land on the invoice
	case UseAddressMsg, ApplyPrefillMsg:
		m.currentScreen = ScreenInvoice
		var cmd tea.Cmd
		m.invoice, cmd = m.invoice.Update(msg)
		return m, cmd

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	if screen := m.screen(m.currentScreen); screen != nil {
		screen, cmd = screen.Update(msg)
		m.setScreen(m.currentScreen, screen)
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Header
	header := headerStyle.Render(fmt.Sprintf("depobill - %s", m.currentScreen.String()))

	// Footer with navigation keys
	footer := footerStyle.Render("[I]nvoice  [A]ddress Book  [P]refill  [,] Settings  [Q]uit")

	content := "Loading..."
	if screen := m.screen(m.currentScreen); screen != nil {
		content = screen.View()
	}

	errorDisplay := ""
	if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

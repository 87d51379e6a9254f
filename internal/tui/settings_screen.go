package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/depobill/internal/app"
	"github.com/andy/depobill/internal/domain"
	"github.com/andy/depobill/internal/export"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldName = iota
	settingsFieldAddress
	settingsFieldPhone
	settingsFieldEmail
	settingsFieldPayableTo
	settingsFieldNumber
	settingsFieldOutputDir
	settingsFieldFormat
	settingsFieldPromptSave
)

type settingsLoadedMsg struct {
	profile domain.BillerProfile
	number  int
	err     error
}

type settingsSavedMsg struct {
	err error
}

// SettingsModel manages the biller profile and export preferences
type SettingsModel struct {
	app       *app.App
	mode      settingsMode
	form      *form
	profile   domain.BillerProfile
	number    int
	err       error
	statusMsg string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return m.loadSettings()
}

func (m *SettingsModel) loadSettings() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		profile, err := m.app.Profile.Get(ctx)
		if err != nil {
			return settingsLoadedMsg{err: err}
		}
		return settingsLoadedMsg{profile: profile, number: m.app.ExportService.CurrentInvoiceNumber(ctx)}
	}
}

func (m *SettingsModel) initForm() tea.Cmd {
	m.form = newForm(
		newInputField("Your Name:", "Jane Reporter", 50, 100),
		newAreaField("Your Address:", "123 Main St\nCity, ST 00000", 50, 3),
		newInputField("Phone:", "(555) 555-5555", 30, 50),
		newInputField("Email:", "you@example.com", 50, 100),
		newInputField("Checks Payable To:", "defaults to your name", 50, 100),
		newInputField("Next Invoice Number:", "1", 10, 9),
		newInputField("Output Directory:", "~/Documents/invoices", 60, 256),
		newInputField("Format (pdf/html):", "pdf", 10, 4),
		newInputField("Ask Where to Save (y/n):", "y", 5, 3),
	)

	cfg := m.app.Config.Export
	m.form.setValue(settingsFieldName, m.profile.Name)
	m.form.setValue(settingsFieldAddress, m.profile.Address)
	m.form.setValue(settingsFieldPhone, m.profile.Phone)
	m.form.setValue(settingsFieldEmail, m.profile.Email)
	m.form.setValue(settingsFieldPayableTo, m.profile.PayableToName)
	m.form.setValue(settingsFieldNumber, strconv.Itoa(m.number))
	m.form.setValue(settingsFieldOutputDir, cfg.OutputDir)
	m.form.setValue(settingsFieldFormat, cfg.Format)
	m.form.setValue(settingsFieldPromptSave, yesNo(cfg.PromptSave))

	return m.form.start(settingsFieldName)
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	value := func(i int) string { return strings.TrimSpace(m.form.value(i)) }

	profile := domain.BillerProfile{
		Name:          value(settingsFieldName),
		Address:       value(settingsFieldAddress),
		Phone:         value(settingsFieldPhone),
		Email:         value(settingsFieldEmail),
		PayableToName: value(settingsFieldPayableTo),
	}
	numberStr := value(settingsFieldNumber)
	outputDir := value(settingsFieldOutputDir)
	formatStr := value(settingsFieldFormat)
	promptStr := value(settingsFieldPromptSave)
	previousNumber := m.number

	return func() tea.Msg {
		number, err := strconv.Atoi(numberStr)
		if err != nil || number < 1 {
			return settingsSavedMsg{err: fmt.Errorf("next invoice number must be a positive number")}
		}
		if outputDir == "" {
			return settingsSavedMsg{err: fmt.Errorf("output directory is required")}
		}
		format, err := export.ParseFormat(formatStr)
		if err != nil {
			return settingsSavedMsg{err: err}
		}
		promptSave, err := parseYesNo(promptStr)
		if err != nil {
			return settingsSavedMsg{err: err}
		}

		ctx := context.Background()
		if err := m.app.Profile.Save(ctx, profile); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save profile: %w", err)}
		}
		if number != previousNumber {
			if err := m.app.ExportService.SetInvoiceNumber(ctx, number); err != nil {
				return settingsSavedMsg{err: fmt.Errorf("failed to save invoice number: %w", err)}
			}
		}

		m.app.Config.Export.OutputDir = outputDir
		m.app.Config.Export.Format = string(format)
		m.app.Config.Export.PromptSave = promptSave
		m.app.DirectSaver.Dir = outputDir

		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.profile = msg.profile
		m.number = msg.number
		return m, nil

	case RefreshDataMsg:
		return m, m.loadSettings()

	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.err = nil
		m.statusMsg = "Settings saved"
		return m, m.loadSettings()
	}

	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
		if k.String() == "enter" {
			m.mode = settingsModeEdit
			m.statusMsg = ""
			return m, m.initForm()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	action, cmd := m.form.Update(msg)
	switch action {
	case formCancel:
		m.mode = settingsModeView
		m.err = nil
		return m, nil
	case formSubmit:
		return m, m.saveSettings()
	}
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return titleStyle.Render("Edit Settings") + "\n\n" + m.form.View() +
			errorLine(m.err) + helpStyle.Render(formHelp)
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"
	s += statusLine(m.statusMsg)

	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s\n", labelStyle.Render(label), valueStyle.Render(value))
	}

	s += subtitleStyle.Render("  Your Details") + "\n\n"
	s += row("Name:", m.profile.Name)
	for i, line := range strings.Split(m.profile.Address, "\n") {
		label := ""
		if i == 0 {
			label = "Address:"
		}
		s += row(label, line)
	}
	s += row("Phone:", m.profile.Phone)
	s += row("Email:", m.profile.Email)
	s += row("Payable To:", m.profile.PayableToName)

	cfg := m.app.Config.Export
	s += "\n" + subtitleStyle.Render("  Invoices") + "\n\n"
	s += row("Next Number:", strconv.Itoa(m.number))
	s += row("Output Dir:", cfg.OutputDir)
	s += row("Format:", cfg.Format)
	s += row("Ask to Save:", yesNo(cfg.PromptSave))

	s += "\n" + errorLine(m.err)
	s += helpStyle.Render("  enter: edit settings")

	return s
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "true":
		return true, nil
	case "n", "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("ask where to save must be y or n, got %q", s)
}

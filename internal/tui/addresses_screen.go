package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/depobill/internal/app"
	"github.com/andy/depobill/internal/domain"
)

type addressesMode int

const (
	addressesModeList addressesMode = iota
	addressesModeConfirmDelete
)

type addressesLoadedMsg struct {
	records []domain.AddressRecord
	err     error
}

type addressesDeletedMsg struct {
	count int
	err   error
}

// AddressesModel browses the client address book
type AddressesModel struct {
	app       *app.App
	mode      addressesMode
	records   []domain.AddressRecord
	cursor    int
	selected  map[string]bool
	err       error
	statusMsg string
}

// NewAddressesModel creates a new address book screen
func NewAddressesModel(a *app.App) tea.Model {
	return &AddressesModel{
		app:      a,
		selected: make(map[string]bool),
	}
}

// IsCapturingInput returns true while a delete confirmation is pending
func (m *AddressesModel) IsCapturingInput() bool {
	return m.mode == addressesModeConfirmDelete
}

func (m *AddressesModel) Init() tea.Cmd {
	return m.loadAddresses()
}

func (m *AddressesModel) loadAddresses() tea.Cmd {
	return func() tea.Msg {
		records, err := m.app.AddressBook.List(context.Background())
		return addressesLoadedMsg{records: records, err: err}
	}
}

func (m *AddressesModel) deleteSelected() tea.Cmd {
	names := m.selectedNames()
	return func() tea.Msg {
		n, err := m.app.AddressBook.DeleteMany(context.Background(), names)
		return addressesDeletedMsg{count: n, err: err}
	}
}

func (m *AddressesModel) selectedNames() []string {
	names := make([]string, 0, len(m.selected))
	for name := range m.selected {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *AddressesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case addressesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.records = msg.records
		if m.cursor >= len(m.records) {
			m.cursor = max(len(m.records)-1, 0)
		}
		// Drop selections for entries that no longer exist
		for name := range m.selected {
			if !m.has(name) {
				delete(m.selected, name)
			}
		}
		return m, nil

	case addressesDeletedMsg:
		m.mode = addressesModeList
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.selected = make(map[string]bool)
		m.statusMsg = fmt.Sprintf("Deleted %d address(es)", msg.count)
		return m, m.loadAddresses()

	case RefreshDataMsg:
		return m, m.loadAddresses()

	case tea.KeyMsg:
		if m.mode == addressesModeConfirmDelete {
			switch msg.String() {
			case "y", "Y":
				return m, m.deleteSelected()
			case "n", "N", "esc":
				m.mode = addressesModeList
			}
			return m, nil
		}

		m.err = nil
		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Toggle):
			if len(m.records) > 0 {
				name := m.records[m.cursor].Name
				if m.selected[name] {
					delete(m.selected, name)
				} else {
					m.selected[name] = true
				}
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if len(m.records) == 0 {
				return m, nil
			}
			if len(m.selected) == 0 {
				m.selected[m.records[m.cursor].Name] = true
			}
			m.statusMsg = ""
			m.mode = addressesModeConfirmDelete
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.records) > 0 {
				record := m.records[m.cursor]
				return m, func() tea.Msg { return UseAddressMsg{Record: record} }
			}
		case key.Matches(msg, DefaultKeyMap.Back):
			m.selected = make(map[string]bool)
		}
	}

	return m, nil
}

func (m *AddressesModel) has(name string) bool {
	for _, r := range m.records {
		if r.Name == name {
			return true
		}
	}
	return false
}

func (m *AddressesModel) View() string {
	var s string
	s += titleStyle.Render("Address Book") + "\n\n"
	s += statusLine(m.statusMsg)

	if len(m.records) == 0 {
		s += subtitleStyle.Render("  No saved clients. Saving an invoice with a client name and address adds one.") + "\n\n"
		s += errorLine(m.err)
		return s
	}

	for i, r := range m.records {
		check := "[ ]"
		if m.selected[r.Name] {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s", check, truncateStr(r.Label(), 60))
		if i == m.cursor {
			s += "> " + selectedStyle.Render(line) + "\n"
		} else {
			s += "  " + line + "\n"
		}
	}
	s += "\n"

	if m.cursor < len(m.records) {
		s += m.viewRecord(m.records[m.cursor])
	}

	if m.mode == addressesModeConfirmDelete {
		s += lipgloss.NewStyle().Foreground(warningColor).
			Render(fmt.Sprintf("  Delete %s? (y/n)", strings.Join(m.selectedNames(), ", "))) + "\n\n"
	}
	s += errorLine(m.err)

	s += helpStyle.Render("  ↑/↓: navigate  space: select  d: delete  enter: use for invoice  esc: clear selection")
	return s
}

func (m *AddressesModel) viewRecord(r domain.AddressRecord) string {
	var s string
	if r.Company != "" {
		s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Company:"), valueStyle.Render(r.Company))
	}
	for i, line := range strings.Split(r.Address, "\n") {
		label := ""
		if i == 0 {
			label = "Address:"
		}
		s += fmt.Sprintf("  %s %s\n", labelStyle.Render(label), valueStyle.Render(line))
	}
	if r.Phone != "" {
		s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Phone:"), valueStyle.Render(r.Phone))
	}
	if r.Email != "" {
		s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Email:"), valueStyle.Render(r.Email))
	}
	return s + "\n"
}

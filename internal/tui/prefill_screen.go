package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/depobill/internal/app"
	"github.com/andy/depobill/internal/domain"
	"github.com/andy/depobill/internal/prefill"
)

type prefillKind int

const (
	prefillNone prefillKind = iota
	prefillDeposition
	prefillCopy
)

func (k prefillKind) String() string {
	switch k {
	case prefillDeposition:
		return "deposition"
	case prefillCopy:
		return "copy of deposition"
	default:
		return ""
	}
}

// PrefillModel generates the standard deposition rows
type PrefillModel struct {
	app   *app.App
	kind  prefillKind
	form  *form
	names []string
	now   func() time.Time
}

// NewPrefillModel creates a new prefill screen
func NewPrefillModel(a *app.App) tea.Model {
	return &PrefillModel{app: a, now: time.Now}
}

// IsCapturingInput returns true while a prefill form is open
func (m *PrefillModel) IsCapturingInput() bool {
	return m.kind != prefillNone
}

func (m *PrefillModel) Init() tea.Cmd {
	return nil
}

// addField appends a named single-line field with an initial value
func (m *PrefillModel) addField(name, label, value string, width int) {
	f := newInputField(label, "", width, 100)
	f.SetValue(value)
	m.form.fields = append(m.form.fields, f)
	m.names = append(m.names, name)
}

func (m *PrefillModel) value(name string) string {
	for i, n := range m.names {
		if n == name {
			return strings.TrimSpace(m.form.value(i))
		}
	}
	return ""
}

// count reads a whole number, treating junk and negatives as zero
func (m *PrefillModel) count(name string) int {
	n, err := strconv.Atoi(m.value(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (m *PrefillModel) openForm(kind prefillKind) tea.Cmd {
	cfg := m.app.Config.Prefill
	today := m.now()
	m.kind = kind
	m.form = newForm()
	m.names = nil

	var ex prefill.Exhibits
	switch kind {
	case prefillDeposition:
		p := prefill.DefaultDepositionParams(cfg, today)
		m.addField("date", "Deposition Date:", p.Date, 12)
		m.addField("deponent", "Deponent:", "", 40)
		m.addField("pages", "Pages:", "", 8)
		m.addField("rate", "Rate per Page:", p.Rate.StringFixed(2), 10)
		m.addField("copies", "Copies Ordered:", "0", 8)
		m.addField("copyRate", "Rate per Copy Page:", p.CopyRate.StringFixed(2), 10)
		m.addField("extra", "Notes:", "", 40)
		m.addField("hours", "Appearance Hours:", p.AppearanceHours.String(), 8)
		m.addField("hourRate", "Appearance Rate:", p.AppearanceRate.StringFixed(2), 10)
		ex = p.Exhibits
	case prefillCopy:
		p := prefill.DefaultCopyParams(cfg, today)
		m.addField("date", "Deposition Date:", p.Date, 12)
		m.addField("deponent", "Deponent:", "", 40)
		m.addField("pages", "Pages:", "", 8)
		m.addField("rate", "Rate per Page:", p.Rate.StringFixed(2), 10)
		m.addField("extra", "Notes:", "", 40)
		ex = p.Exhibits
	}
	m.addField("bw", "B/W Exhibit Pages:", "0", 8)
	m.addField("bwRate", "B/W Rate:", ex.BWRate.StringFixed(2), 10)
	m.addField("color", "Color Exhibit Pages:", "0", 8)
	m.addField("colorRate", "Color Rate:", ex.ColorRate.StringFixed(2), 10)

	return m.form.start(0)
}

// generate builds the rows from the open form
func (m *PrefillModel) generate() []domain.LineItem {
	ex := prefill.Exhibits{
		BW:        m.count("bw"),
		BWRate:    domain.ParseAmount(m.value("bwRate")),
		Color:     m.count("color"),
		ColorRate: domain.ParseAmount(m.value("colorRate")),
	}
	if m.kind == prefillCopy {
		return prefill.CopyOfDeposition(prefill.CopyParams{
			Date:     m.value("date"),
			Deponent: m.value("deponent"),
			Pages:    m.count("pages"),
			Rate:     domain.ParseAmount(m.value("rate")),
			Extra:    m.value("extra"),
			Exhibits: ex,
		})
	}
	return prefill.Deposition(prefill.DepositionParams{
		Date:            m.value("date"),
		Deponent:        m.value("deponent"),
		Pages:           m.count("pages"),
		Rate:            domain.ParseAmount(m.value("rate")),
		Copies:          m.count("copies"),
		CopyRate:        domain.ParseAmount(m.value("copyRate")),
		Extra:           m.value("extra"),
		AppearanceHours: domain.ParseAmount(m.value("hours")),
		AppearanceRate:  domain.ParseAmount(m.value("hourRate")),
		Exhibits:        ex,
	})
}

func (m *PrefillModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.kind != prefillNone {
		action, cmd := m.form.Update(msg)
		switch action {
		case formCancel:
			m.kind = prefillNone
			return m, nil
		case formSubmit:
			kind := m.kind
			items := m.generate()
			m.kind = prefillNone
			return m, func() tea.Msg { return ApplyPrefillMsg{Kind: kind.String(), Items: items} }
		}
		return m, cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "1", "d":
			return m, m.openForm(prefillDeposition)
		case "2", "c":
			return m, m.openForm(prefillCopy)
		}
	}
	return m, nil
}

func (m *PrefillModel) View() string {
	if m.kind != prefillNone {
		var s string
		s += titleStyle.Render(fmt.Sprintf("Prefill: %s", m.kind)) + "\n\n"
		s += m.form.View()
		s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: replace invoice rows  esc: cancel")
		return s
	}

	var s string
	s += titleStyle.Render("Prefill") + "\n\n"
	s += subtitleStyle.Render("  Replaces the invoice rows with the standard charges.") + "\n\n"
	s += "  1. Deposition (original, appearance fee, exhibits)\n"
	s += "  2. Copy of deposition (copy, exhibits)\n\n"
	s += helpStyle.Render("  1/d: deposition  2/c: copy of deposition")
	return s
}

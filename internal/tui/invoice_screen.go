package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/depobill/internal/app"
	"github.com/andy/depobill/internal/domain"
	"github.com/andy/depobill/internal/export"
	"github.com/andy/depobill/internal/prefill"
	"github.com/andy/depobill/internal/render"
	"github.com/andy/depobill/internal/service"
)

type invoiceMode int

const (
	invoiceModeList invoiceMode = iota
	invoiceModeDetails
	invoiceModeRow
	invoiceModeSavePath
	invoiceModeConfirmClear
)

// details form field indices
const (
	detailClientName = iota
	detailClientCompany
	detailClientAddress
	detailClientPhone
	detailClientEmail
	detailCaseInfo
	detailDate
	detailNumber
)

// row form field indices
const (
	rowFieldDescription = iota
	rowFieldQuantity
	rowFieldUnitPrice
)

const dateLayout = "2006-01-02"

type invoiceLoadedMsg struct {
	profile domain.BillerProfile
	number  int
	err     error
}

type invoicePreviewMsg struct {
	doc *render.Document
	err error
}

type invoiceExportedMsg struct {
	result *service.ExportResult
	err    error
}

type numberSavedMsg struct {
	err error
}

// InvoiceModel is the invoice being drafted: client block, rows and export
type InvoiceModel struct {
	app    *app.App
	mode   invoiceMode
	ledger *domain.Ledger
	cursor int
	marked domain.RowID

	profile  domain.BillerProfile
	client   domain.AddressRecord
	caseInfo string
	date     string
	number   int
	format   export.Format

	details    *form
	row        *form
	editingRow domain.RowID
	savePath   textinput.Model

	err       error
	statusMsg string
	warnings  []string
}

// NewInvoiceModel creates a new invoice screen dated today
func NewInvoiceModel(a *app.App) tea.Model {
	return &InvoiceModel{
		app:    a,
		mode:   invoiceModeList,
		ledger: domain.NewLedger(),
		date:   time.Now().Format(dateLayout),
		format: a.ExportFormat(),
	}
}

// IsCapturingInput returns true while a form, prompt or confirmation is open
func (m *InvoiceModel) IsCapturingInput() bool {
	return m.mode != invoiceModeList
}

func (m *InvoiceModel) Init() tea.Cmd {
	return m.loadInvoice()
}

func (m *InvoiceModel) loadInvoice() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		profile, err := m.app.Profile.Get(ctx)
		if err != nil {
			return invoiceLoadedMsg{err: err}
		}
		return invoiceLoadedMsg{
			profile: profile,
			number:  m.app.ExportService.CurrentInvoiceNumber(ctx),
		}
	}
}

func (m *InvoiceModel) request() service.ExportRequest {
	return service.ExportRequest{
		Biller:    m.profile,
		Client:    m.client,
		CaseInfo:  m.caseInfo,
		Number:    m.number,
		Date:      m.date,
		Items:     m.ledger.Rows(),
		PayableTo: m.profile.PayableToName,
	}
}

func (m *InvoiceModel) preview() tea.Cmd {
	req := m.request()
	return func() tea.Msg {
		doc, err := m.app.ExportService.Preview(context.Background(), req)
		return invoicePreviewMsg{doc: doc, err: err}
	}
}

// exportInvoice saves to dest, or straight to the output directory when dest is nil
func (m *InvoiceModel) exportInvoice(dest *string) tea.Cmd {
	req := m.request()
	opts := service.ExportOptions{Format: m.format}
	if dest != nil {
		path := *dest
		opts.Saver = &export.PromptSaver{Prompt: func(ctx context.Context, _ string) (string, error) {
			return path, nil
		}}
	}
	return func() tea.Msg {
		result, err := m.app.ExportService.Export(context.Background(), req, opts)
		return invoiceExportedMsg{result: result, err: err}
	}
}

func (m *InvoiceModel) saveNumber(n int) tea.Cmd {
	return func() tea.Msg {
		return numberSavedMsg{err: m.app.ExportService.SetInvoiceNumber(context.Background(), n)}
	}
}

func (m *InvoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoiceLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.profile = msg.profile
		m.number = msg.number
		return m, nil

	case RefreshDataMsg:
		return m, m.loadInvoice()

	case UseAddressMsg:
		m.client = msg.Record
		m.statusMsg = fmt.Sprintf("Billing %s", msg.Record.Label())
		return m, nil

	case ApplyPrefillMsg:
		prefill.Apply(m.ledger, msg.Items)
		m.cursor = 0
		m.marked = ""
		m.statusMsg = fmt.Sprintf("Rows replaced with %s prefill", msg.Kind)
		return m, nil

	case numberSavedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case invoicePreviewMsg:
		return m.handlePreview(msg)

	case invoiceExportedMsg:
		m.mode = invoiceModeList
		if msg.err != nil {
			if errors.Is(msg.err, export.ErrCancelled) {
				m.statusMsg = "Export cancelled"
				return m, nil
			}
			m.err = msg.err
			return m, nil
		}
		m.number = msg.result.NextNumber
		m.warnings = msg.result.Warnings
		m.statusMsg = fmt.Sprintf("Invoice #%d saved to %s", msg.result.Number, msg.result.Path)
		if msg.result.AddressSaved {
			m.statusMsg += " (client added to address book)"
		}
		return m, nil
	}

	switch m.mode {
	case invoiceModeDetails:
		return m.updateDetails(msg)
	case invoiceModeRow:
		return m.updateRow(msg)
	case invoiceModeSavePath:
		return m.updateSavePath(msg)
	case invoiceModeConfirmClear:
		return m.updateConfirmClear(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.err = nil

	rows := m.ledger.Rows()
	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, DefaultKeyMap.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, DefaultKeyMap.MoveUp):
		if m.cursor > 0 && len(rows) > 0 {
			m.err = m.ledger.Reorder(rows[m.cursor].ID, m.cursor-1)
			m.cursor--
		}

	case key.Matches(keyMsg, DefaultKeyMap.MoveDown):
		if m.cursor < len(rows)-1 {
			m.err = m.ledger.Reorder(rows[m.cursor].ID, m.cursor+1)
			m.cursor++
		}

	case key.Matches(keyMsg, DefaultKeyMap.Mark):
		m.markOrDrop(rows)

	case key.Matches(keyMsg, DefaultKeyMap.Back):
		m.marked = ""

	case key.Matches(keyMsg, DefaultKeyMap.New):
		id := m.ledger.AddEmptyRow()
		m.cursor = m.ledger.Len() - 1
		return m, m.openRowForm(id)

	case key.Matches(keyMsg, DefaultKeyMap.Edit):
		if len(rows) > 0 {
			return m, m.openRowForm(rows[m.cursor].ID)
		}

	case key.Matches(keyMsg, DefaultKeyMap.Delete):
		if len(rows) > 0 {
			m.ledger.RemoveRow(rows[m.cursor].ID)
			if m.cursor >= m.ledger.Len() && m.cursor > 0 {
				m.cursor--
			}
		}

	case key.Matches(keyMsg, DefaultKeyMap.Clear):
		if len(rows) > 0 {
			m.mode = invoiceModeConfirmClear
		}

	case key.Matches(keyMsg, DefaultKeyMap.Details):
		return m, m.openDetailsForm()

	case key.Matches(keyMsg, DefaultKeyMap.Book):
		return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenAddresses} }

	case key.Matches(keyMsg, DefaultKeyMap.Format):
		if m.format == export.FormatPDF {
			m.format = export.FormatHTML
		} else {
			m.format = export.FormatPDF
		}

	case key.Matches(keyMsg, DefaultKeyMap.Export):
		m.statusMsg = ""
		m.warnings = nil
		return m, m.preview()
	}

	return m, nil
}

// markOrDrop picks the row to move, then drops it onto the row under the cursor
func (m *InvoiceModel) markOrDrop(rows []domain.LineItem) {
	if len(rows) == 0 {
		return
	}
	current := rows[m.cursor].ID
	switch m.marked {
	case "":
		m.marked = current
	case current:
		m.marked = ""
	default:
		if err := m.ledger.MoveOnto(m.marked, current); err != nil {
			m.err = err
		}
		for i, r := range m.ledger.Rows() {
			if r.ID == m.marked {
				m.cursor = i
			}
		}
		m.marked = ""
	}
}

func (m *InvoiceModel) handlePreview(msg invoicePreviewMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	if !m.app.Config.Export.PromptSave {
		return m, m.exportInvoice(nil)
	}

	m.savePath = textinput.New()
	m.savePath.CharLimit = 512
	m.savePath.Width = 70
	m.savePath.SetValue(filepath.Join(m.app.Config.Export.OutputDir, msg.doc.Filename(string(m.format))))
	m.mode = invoiceModeSavePath
	return m, m.savePath.Focus()
}

func (m *InvoiceModel) updateSavePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.mode = invoiceModeList
			m.statusMsg = "Export cancelled"
			return m, nil
		case "enter":
			dest := m.savePath.Value()
			m.savePath.Blur()
			m.statusMsg = "Saving..."
			return m, m.exportInvoice(&dest)
		}
	}
	var cmd tea.Cmd
	m.savePath, cmd = m.savePath.Update(msg)
	return m, cmd
}

func (m *InvoiceModel) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "y", "Y":
			m.ledger.Clear()
			m.cursor = 0
			m.marked = ""
			m.statusMsg = "All rows cleared"
			m.mode = invoiceModeList
		case "n", "N", "esc":
			m.mode = invoiceModeList
		}
	}
	return m, nil
}

func (m *InvoiceModel) openDetailsForm() tea.Cmd {
	m.details = newForm(
		newInputField("Client Name:", "Jane Attorney", 50, 100),
		newInputField("Company:", "Firm LLP (optional)", 50, 100),
		newAreaField("Client Address:", "123 Main St\nCity, ST 00000", 50, 3),
		newInputField("Client Phone:", "(optional)", 30, 50),
		newInputField("Client Email:", "(optional)", 50, 100),
		newAreaField("Case Info:", "Case name, number, court", 50, 3),
		newInputField("Invoice Date:", dateLayout, 12, 10),
		newInputField("Invoice Number:", "1", 10, 9),
	)
	m.details.setValue(detailClientName, m.client.Name)
	m.details.setValue(detailClientCompany, m.client.Company)
	m.details.setValue(detailClientAddress, m.client.Address)
	m.details.setValue(detailClientPhone, m.client.Phone)
	m.details.setValue(detailClientEmail, m.client.Email)
	m.details.setValue(detailCaseInfo, m.caseInfo)
	m.details.setValue(detailDate, m.date)
	m.details.setValue(detailNumber, strconv.Itoa(m.number))

	m.mode = invoiceModeDetails
	m.statusMsg = ""
	return m.details.start(detailClientName)
}

func (m *InvoiceModel) updateDetails(msg tea.Msg) (tea.Model, tea.Cmd) {
	action, cmd := m.details.Update(msg)
	switch action {
	case formCancel:
		m.mode = invoiceModeList
		m.err = nil
		return m, nil
	case formSubmit:
		return m, m.saveDetails()
	}
	return m, cmd
}

func (m *InvoiceModel) saveDetails() tea.Cmd {
	date := strings.TrimSpace(m.details.value(detailDate))
	if date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			m.err = fmt.Errorf("invoice date must look like %s", dateLayout)
			return nil
		}
	}

	m.client = domain.AddressRecord{
		Name:    strings.TrimSpace(m.details.value(detailClientName)),
		Company: strings.TrimSpace(m.details.value(detailClientCompany)),
		Address: strings.TrimSpace(m.details.value(detailClientAddress)),
		Phone:   strings.TrimSpace(m.details.value(detailClientPhone)),
		Email:   strings.TrimSpace(m.details.value(detailClientEmail)),
	}
	m.caseInfo = strings.TrimSpace(m.details.value(detailCaseInfo))
	m.date = date
	m.mode = invoiceModeList
	m.err = nil

	// An unusable number keeps the stored one
	n, err := strconv.Atoi(strings.TrimSpace(m.details.value(detailNumber)))
	if err != nil || n < 1 || n == m.number {
		return nil
	}
	m.number = n
	return m.saveNumber(n)
}

func (m *InvoiceModel) openRowForm(id domain.RowID) tea.Cmd {
	item, ok := m.ledger.Row(id)
	if !ok {
		m.err = domain.ErrRowNotFound
		return nil
	}
	m.row = newForm(
		newInputField("Description:", "DEPOSITION - ...", 60, 200),
		newInputField("Quantity:", "1", 12, 12),
		newInputField("Unit Price:", "0.00", 12, 12),
	)
	m.row.setValue(rowFieldDescription, item.Description)
	m.row.setValue(rowFieldQuantity, item.Quantity.String())
	m.row.setValue(rowFieldUnitPrice, item.UnitPrice.StringFixed(2))
	m.editingRow = id
	m.mode = invoiceModeRow
	return m.row.start(rowFieldDescription)
}

func (m *InvoiceModel) updateRow(msg tea.Msg) (tea.Model, tea.Cmd) {
	action, cmd := m.row.Update(msg)
	switch action {
	case formCancel:
		m.mode = invoiceModeList
		return m, nil
	case formSubmit:
		updates := []struct {
			field domain.Field
			index int
		}{
			{domain.FieldDescription, rowFieldDescription},
			{domain.FieldQuantity, rowFieldQuantity},
			{domain.FieldUnitPrice, rowFieldUnitPrice},
		}
		for _, u := range updates {
			if err := m.ledger.UpdateRow(m.editingRow, u.field, m.row.value(u.index)); err != nil {
				m.err = err
				break
			}
		}
		m.mode = invoiceModeList
		return m, nil
	}
	return m, cmd
}

func (m *InvoiceModel) View() string {
	switch m.mode {
	case invoiceModeDetails:
		return titleStyle.Render("Invoice Details") + "\n\n" + m.details.View() +
			errorLine(m.err) + helpStyle.Render(formHelp)
	case invoiceModeRow:
		return titleStyle.Render("Edit Row") + "\n\n" + m.row.View() +
			errorLine(m.err) + helpStyle.Render(formHelp)
	case invoiceModeSavePath:
		return titleStyle.Render("Save Invoice") + "\n\n" +
			subtitleStyle.Render("  Save to (a directory keeps the suggested name):") + "\n  " +
			m.savePath.View() + "\n\n" + statusLine(m.statusMsg) +
			helpStyle.Render("  enter: save  esc: cancel")
	}
	return m.viewInvoice()
}

func (m *InvoiceModel) viewInvoice() string {
	var s string
	s += titleStyle.Render(fmt.Sprintf("Invoice #%d", m.number)) +
		subtitleStyle.Render(fmt.Sprintf("  %s", strings.ToUpper(string(m.format)))) + "\n\n"

	from := m.profile.Name
	if from == "" {
		from = lipgloss.NewStyle().Foreground(warningColor).Render("(set your name in settings)")
	}
	to := m.client.Label()
	if to == "" {
		to = subtitleStyle.Render("(none: c to fill in, b for address book)")
	}
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("From:"), valueStyle.Render(from))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("To:"), valueStyle.Render(to))
	if m.caseInfo != "" {
		s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Case:"), valueStyle.Render(truncateStr(oneLine(m.caseInfo), 60)))
	}
	s += fmt.Sprintf("  %s %s\n\n", labelStyle.Render("Date:"), valueStyle.Render(m.date))

	rows := m.ledger.Rows()
	if len(rows) == 0 {
		s += subtitleStyle.Render("  No rows yet. Press n to add one or p to prefill.") + "\n\n"
	} else {
		s += subtitleStyle.Render(fmt.Sprintf("  %-44s %8s %11s %12s", "Description", "Qty", "Price", "Total")) + "\n"
		for i, r := range rows {
			line := fmt.Sprintf("%-44s %8s %11s %12s",
				truncateStr(oneLine(r.Description), 44),
				r.Quantity.String(),
				domain.FormatCurrency(r.UnitPrice),
				domain.FormatCurrency(r.Total()),
			)
			switch {
			case i == m.cursor:
				s += "> " + selectedStyle.Render(line) + "\n"
			case r.ID == m.marked:
				s += "  " + markedRowStyle.Render(line) + "\n"
			default:
				s += "  " + line + "\n"
			}
		}
		s += "\n"
	}

	s += fmt.Sprintf("  %s %s\n\n", labelStyle.Render("Balance Due:"), totalStyle.Render(domain.FormatCurrency(m.ledger.BalanceDue())))

	if m.marked != "" {
		s += lipgloss.NewStyle().Foreground(accentColor).
			Render("  Moving row: go to the target row and press m again (esc to stop)") + "\n\n"
	}
	if m.mode == invoiceModeConfirmClear {
		s += lipgloss.NewStyle().Foreground(warningColor).
			Render("  Clear all rows? (y/n)") + "\n\n"
	}

	s += statusLine(m.statusMsg)
	for _, w := range m.warnings {
		s += lipgloss.NewStyle().Foreground(warningColor).Render("  Warning: "+w) + "\n"
	}
	s += errorLine(m.err)

	s += helpStyle.Render("  n: new row  enter: edit  d: delete  K/J: move  m: move onto  x: clear") + "\n"
	s += helpStyle.Render("  c: details  b: address book  f: format  s: save invoice")
	return s
}

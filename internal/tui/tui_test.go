package tui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/depobill/internal/app"
	"github.com/andy/depobill/internal/config"
	"github.com/andy/depobill/internal/domain"
	"github.com/andy/depobill/internal/repository"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Export.OutputDir = t.TempDir()
	cfg.Export.Format = "html"
	cfg.Export.PromptSave = false

	a := app.NewWithStore(cfg, repository.NewMemoryKV(), log.New(io.Discard))
	a.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")
	return a
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and feeds its message back into model
func run(t *testing.T, model tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	require.NotNil(t, cmd)
	model, _ = model.Update(cmd())
	return model
}

func newLoadedInvoice(t *testing.T, a *app.App) *InvoiceModel {
	t.Helper()
	m := NewInvoiceModel(a).(*InvoiceModel)
	run(t, m, m.Init())
	return m
}

func depositionRows() []domain.LineItem {
	return []domain.LineItem{
		domain.NewLineItem("first", decimal.NewFromInt(2), decimal.NewFromInt(10)),
		domain.NewLineItem("second", decimal.NewFromInt(1), decimal.NewFromInt(5)),
		domain.NewLineItem("third", decimal.NewFromInt(3), decimal.RequireFromString("1.25")),
	}
}

func descriptions(l *domain.Ledger) []string {
	var out []string
	for _, r := range l.Rows() {
		out = append(out, r.Description)
	}
	return out
}

func TestInvoice_NewRowForm(t *testing.T) {
	m := newLoadedInvoice(t, newTestApp(t))

	m.Update(press("n"))
	require.Equal(t, invoiceModeRow, m.mode)
	assert.True(t, m.IsCapturingInput())
	assert.Equal(t, 1, m.ledger.Len())

	m.row.setValue(rowFieldDescription, "Transcript")
	m.row.setValue(rowFieldQuantity, "120")
	m.row.setValue(rowFieldUnitPrice, "abc")
	m.Update(press("ctrl+s"))

	assert.Equal(t, invoiceModeList, m.mode)
	rows := m.ledger.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Transcript", rows[0].Description)
	assert.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(120)))
	assert.True(t, rows[0].UnitPrice.IsZero())
}

func TestInvoice_EditRowCancelKeepsValues(t *testing.T) {
	m := newLoadedInvoice(t, newTestApp(t))
	m.Update(ApplyPrefillMsg{Kind: "deposition", Items: depositionRows()})

	m.Update(press("enter"))
	require.Equal(t, invoiceModeRow, m.mode)
	m.row.setValue(rowFieldDescription, "changed")
	m.Update(press("esc"))

	assert.Equal(t, invoiceModeList, m.mode)
	assert.Equal(t, "first", m.ledger.Rows()[0].Description)
}

func TestInvoice_ReorderKeepsBalance(t *testing.T) {
	m := newLoadedInvoice(t, newTestApp(t))
	m.Update(ApplyPrefillMsg{Kind: "deposition", Items: depositionRows()})
	before := m.ledger.BalanceDue()

	m.Update(press("j"))
	m.Update(press("K"))
	assert.Equal(t, []string{"second", "first", "third"}, descriptions(m.ledger))
	assert.Equal(t, 0, m.cursor)

	m.Update(press("J"))
	m.Update(press("J"))
	assert.Equal(t, []string{"first", "third", "second"}, descriptions(m.ledger))
	assert.Equal(t, 2, m.cursor)

	assert.True(t, before.Equal(m.ledger.BalanceDue()))
}

func TestInvoice_MoveOnto(t *testing.T) {
	m := newLoadedInvoice(t, newTestApp(t))
	m.Update(ApplyPrefillMsg{Kind: "deposition", Items: depositionRows()})

	m.Update(press("m"))
	assert.NotEmpty(t, m.marked)
	m.Update(press("j"))
	m.Update(press("j"))
	m.Update(press("m"))

	assert.Empty(t, m.marked)
	assert.Equal(t, []string{"second", "third", "first"}, descriptions(m.ledger))
	assert.Equal(t, 2, m.cursor)
}

func TestInvoice_DeleteAndClear(t *testing.T) {
	m := newLoadedInvoice(t, newTestApp(t))
	m.Update(ApplyPrefillMsg{Kind: "deposition", Items: depositionRows()})

	m.Update(press("d"))
	assert.Equal(t, []string{"second", "third"}, descriptions(m.ledger))

	m.Update(press("x"))
	require.Equal(t, invoiceModeConfirmClear, m.mode)
	m.Update(press("n"))
	assert.Equal(t, 2, m.ledger.Len())

	m.Update(press("x"))
	m.Update(press("y"))
	assert.Equal(t, 0, m.ledger.Len())
	assert.True(t, m.ledger.BalanceDue().IsZero())
}

func TestInvoice_DetailsFormSavesNumber(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	m := newLoadedInvoice(t, a)

	m.Update(press("c"))
	require.Equal(t, invoiceModeDetails, m.mode)
	m.details.setValue(detailClientName, "Acme")
	m.details.setValue(detailClientAddress, "1 Main St\nTown")
	m.details.setValue(detailNumber, "42")
	_, cmd := m.Update(press("ctrl+s"))
	run(t, m, cmd)

	assert.Equal(t, invoiceModeList, m.mode)
	assert.Equal(t, "Acme", m.client.Name)
	assert.Equal(t, 42, m.number)
	assert.Equal(t, 42, a.Sequence.Current(ctx))
}

func TestInvoice_DetailsFormRejectsBadDate(t *testing.T) {
	m := newLoadedInvoice(t, newTestApp(t))

	m.Update(press("c"))
	m.details.setValue(detailDate, "03/05/2024")
	m.Update(press("ctrl+s"))

	assert.Equal(t, invoiceModeDetails, m.mode)
	assert.Error(t, m.err)
}

func TestInvoice_ExportDirect(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	m := newLoadedInvoice(t, a)
	m.profile = domain.BillerProfile{Name: "Pat Reporter"}
	m.Update(UseAddressMsg{Record: domain.AddressRecord{Name: "Acme", Address: "1 Main St"}})
	m.date = "2024-03-05"
	m.Update(ApplyPrefillMsg{Kind: "deposition", Items: depositionRows()})

	_, cmd := m.Update(press("s"))
	require.NotNil(t, cmd)
	_, cmd = m.Update(cmd())
	run(t, m, cmd)

	require.NoError(t, m.err)
	want := filepath.Join(a.Config.Export.OutputDir, "Invoice_1_2024-03-05.html")
	assert.FileExists(t, want)
	assert.Contains(t, m.statusMsg, want)
	assert.Contains(t, m.statusMsg, "address book")
	assert.Equal(t, 2, m.number)
	assert.Equal(t, 2, a.Sequence.Current(ctx))
}

func TestInvoice_ExportValidationBlocks(t *testing.T) {
	a := newTestApp(t)
	m := newLoadedInvoice(t, a)

	_, cmd := m.Update(press("s"))
	_, next := m.Update(cmd())

	assert.Nil(t, next)
	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "your name")
	assert.Equal(t, 1, a.Sequence.Current(context.Background()))
}

func TestInvoice_ExportPromptCancel(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	a.Config.Export.PromptSave = true
	m := newLoadedInvoice(t, a)
	m.profile = domain.BillerProfile{Name: "Pat"}
	m.client = domain.AddressRecord{Name: "Acme", Address: "1 Main St"}
	m.date = "2024-03-05"

	_, cmd := m.Update(press("s"))
	m.Update(cmd())
	require.Equal(t, invoiceModeSavePath, m.mode)
	assert.True(t, strings.HasSuffix(m.savePath.Value(), "Invoice_1_2024-03-05.html"))

	m.Update(press("esc"))
	assert.Equal(t, invoiceModeList, m.mode)
	assert.Equal(t, "Export cancelled", m.statusMsg)
	assert.Equal(t, 1, a.Sequence.Current(ctx))
	_, err := a.AddressBook.Lookup(ctx, "Acme")
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)
}

func TestInvoice_ExportPromptPath(t *testing.T) {
	a := newTestApp(t)
	a.Config.Export.PromptSave = true
	m := newLoadedInvoice(t, a)
	m.profile = domain.BillerProfile{Name: "Pat"}
	m.client = domain.AddressRecord{Name: "Acme"}
	m.date = "2024-03-05"

	_, cmd := m.Update(press("s"))
	m.Update(cmd())
	dest := filepath.Join(t.TempDir(), "chosen.html")
	m.savePath.SetValue(dest)
	_, cmd = m.Update(press("enter"))
	run(t, m, cmd)

	require.NoError(t, m.err)
	assert.FileExists(t, dest)
	entries, err := os.ReadDir(a.Config.Export.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInvoice_FormatToggle(t *testing.T) {
	m := newLoadedInvoice(t, newTestApp(t))
	assert.Equal(t, "html", string(m.format))
	m.Update(press("f"))
	assert.Equal(t, "pdf", string(m.format))
}

func TestPrefill_DepositionForm(t *testing.T) {
	a := newTestApp(t)
	m := NewPrefillModel(a).(*PrefillModel)

	m.Update(press("1"))
	require.True(t, m.IsCapturingInput())
	m.form.setValue(indexOf(m.names, "date"), "2024-03-05")
	m.form.setValue(indexOf(m.names, "deponent"), "J. Smith")
	m.form.setValue(indexOf(m.names, "pages"), "100")
	m.form.setValue(indexOf(m.names, "copies"), "2")

	_, cmd := m.Update(press("ctrl+s"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(ApplyPrefillMsg)
	require.True(t, ok)

	assert.False(t, m.IsCapturingInput())
	assert.Equal(t, "deposition", msg.Kind)
	require.Len(t, msg.Items, 2)
	assert.True(t, strings.HasPrefix(msg.Items[0].Description, "DEPOSITION 03/05/24 - J. Smith - 100 pages"))
	assert.True(t, msg.Items[0].UnitPrice.Equal(decimal.RequireFromString("7.40")))
	assert.True(t, msg.Items[1].Quantity.Equal(decimal.NewFromInt(3)))
}

func TestPrefill_CopyFormJunkCounts(t *testing.T) {
	m := NewPrefillModel(newTestApp(t)).(*PrefillModel)

	m.Update(press("2"))
	m.form.setValue(indexOf(m.names, "pages"), "-5")
	m.form.setValue(indexOf(m.names, "bw"), "ten")

	_, cmd := m.Update(press("ctrl+s"))
	msg := cmd().(ApplyPrefillMsg)
	require.Len(t, msg.Items, 1)
	assert.True(t, msg.Items[0].Quantity.IsZero())
}

func TestAddresses_DeleteSelected(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	for _, name := range []string{"Bob", "Alice", "Carol"} {
		require.NoError(t, a.AddressBook.Upsert(ctx, domain.AddressRecord{Name: name, Address: "x"}))
	}

	m := NewAddressesModel(a).(*AddressesModel)
	run(t, m, m.Init())
	require.Len(t, m.records, 3)
	assert.Equal(t, "Alice", m.records[0].Name)

	m.Update(press(" "))
	m.Update(press("j"))
	m.Update(press("j"))
	m.Update(press(" "))
	m.Update(press("d"))
	require.True(t, m.IsCapturingInput())

	_, cmd := m.Update(press("y"))
	_, cmd = m.Update(cmd())
	run(t, m, cmd)

	assert.Contains(t, m.statusMsg, "Deleted 2")
	require.Len(t, m.records, 1)
	assert.Equal(t, "Bob", m.records[0].Name)
}

func TestAddresses_SelectFillsInvoice(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	rec := domain.AddressRecord{Name: "Acme", Company: "Acme LLP", Address: "1 Main St"}
	require.NoError(t, a.AddressBook.Upsert(ctx, rec))

	root := New(a)
	var model tea.Model = root
	model, _ = model.Update(press("a"))
	require.Equal(t, ScreenAddresses, model.(Model).currentScreen)

	addresses := model.(Model).addresses
	addresses, _ = addresses.Update(addresses.Init()())
	_, cmd := addresses.Update(press("enter"))
	require.NotNil(t, cmd)

	model, _ = model.Update(cmd())
	root = model.(Model)
	assert.Equal(t, ScreenInvoice, root.currentScreen)
	assert.Equal(t, rec, root.invoice.(*InvoiceModel).client)
}

func TestRoot_NavigationSuppressedWhileTyping(t *testing.T) {
	var model tea.Model = New(newTestApp(t))

	model, _ = model.Update(press("c"))
	require.True(t, model.(Model).invoice.(*InvoiceModel).IsCapturingInput())

	model, _ = model.Update(press("a"))
	assert.Equal(t, ScreenInvoice, model.(Model).currentScreen)

	model, _ = model.Update(press("esc"))
	model, _ = model.Update(press(","))
	assert.Equal(t, ScreenSettings, model.(Model).currentScreen)
}

func TestSettings_Save(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	outDir := t.TempDir()

	m := NewSettingsModel(a).(*SettingsModel)
	run(t, m, m.Init())
	m.Update(press("enter"))
	require.True(t, m.IsCapturingInput())

	m.form.setValue(settingsFieldName, "Pat Reporter")
	m.form.setValue(settingsFieldAddress, "9 Court St\nTown")
	m.form.setValue(settingsFieldNumber, "100")
	m.form.setValue(settingsFieldOutputDir, outDir)
	m.form.setValue(settingsFieldFormat, "pdf")
	m.form.setValue(settingsFieldPromptSave, "yes")
	_, cmd := m.Update(press("ctrl+s"))
	_, cmd = m.Update(cmd())
	run(t, m, cmd)

	require.NoError(t, m.err)
	assert.Equal(t, "Settings saved", m.statusMsg)

	profile, err := a.Profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Pat Reporter", profile.Name)
	assert.Equal(t, "9 Court St\nTown", profile.Address)
	assert.Equal(t, 100, a.Sequence.Current(ctx))
	assert.Equal(t, outDir, a.DirectSaver.Dir)
	assert.True(t, a.Config.Export.PromptSave)
	assert.FileExists(t, a.ConfigPath)
}

func TestSettings_RejectsBadNumber(t *testing.T) {
	a := newTestApp(t)
	m := NewSettingsModel(a).(*SettingsModel)
	run(t, m, m.Init())
	m.Update(press("enter"))

	m.form.setValue(settingsFieldNumber, "0")
	_, cmd := m.Update(press("ctrl+s"))
	run(t, m, cmd)

	assert.Error(t, m.err)
	assert.True(t, m.IsCapturingInput())
	assert.Equal(t, 1, a.Sequence.Current(context.Background()))
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

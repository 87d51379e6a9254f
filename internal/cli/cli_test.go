package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/depobill/internal/app"
	"github.com/andy/depobill/internal/config"
	"github.com/andy/depobill/internal/domain"
	"github.com/andy/depobill/internal/repository"
)

func setupTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Export.OutputDir = t.TempDir()
	cfg.Export.Format = "html"
	cfg.Export.PromptSave = false

	a := app.NewWithStore(cfg, repository.NewMemoryKV(), log.New(io.Discard))
	SetApp(a)
	t.Cleanup(func() { SetApp(nil) })
	return a
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	return rootCmd.Execute()
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", d)

	_, err = parseDate("03/05/2024")
	assert.Error(t, err)

	d, err = parseDate("today")
	require.NoError(t, err)
	assert.Len(t, d, 10)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Müller ...", truncate("Müller & Söhne GmbH", 10))
	assert.Equal(t, "日本語...", truncate("日本語の依頼人", 6))
	assert.Equal(t, "日本", truncate("日本語", 2))
}

func TestConfirmPrompt(t *testing.T) {
	stdin = strings.NewReader("yes\n")
	assert.True(t, confirmPrompt("ok?"))
	stdin = strings.NewReader("n\n")
	assert.False(t, confirmPrompt("ok?"))
	stdin = strings.NewReader("")
	assert.False(t, confirmPrompt("ok?"))
	stdin = os.Stdin
}

func TestExportCommand(t *testing.T) {
	a := setupTestApp(t)
	ctx := context.Background()
	require.NoError(t, a.Profile.Save(ctx, domain.BillerProfile{Name: "Pat Reporter"}))
	require.NoError(t, a.Sequence.Set(ctx, 3))

	path := filepath.Join(t.TempDir(), "draft.yaml")
	body := "date: 2024-03-05\nclient:\n  name: Acme Legal\n  address: 1 Main St\nitems:\n  - description: Transcript\n    quantity: \"10\"\n    unit_price: \"2.25\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	require.NoError(t, run(t, "export", path))

	_, err := os.Stat(filepath.Join(a.Config.Export.OutputDir, "Invoice_3_2024-03-05.html"))
	assert.NoError(t, err)
	assert.Equal(t, 4, a.Sequence.Current(ctx))
	_, err = a.AddressBook.Lookup(ctx, "Acme Legal")
	assert.NoError(t, err)
}

func TestExportCommand_CancelledPrompt(t *testing.T) {
	a := setupTestApp(t)
	a.Config.Export.PromptSave = true
	ctx := context.Background()
	require.NoError(t, a.Profile.Save(ctx, domain.BillerProfile{Name: "Pat Reporter"}))

	path := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, os.WriteFile(path, []byte("date: 2024-03-05\nclient:\n  name: Acme\n  address: x\n"), 0644))

	// end of input at the save prompt cancels
	stdin = &bytes.Buffer{}
	defer func() { stdin = os.Stdin }()

	require.NoError(t, run(t, "export", path))
	assert.Equal(t, 1, a.Sequence.Current(ctx))
	_, err := a.AddressBook.Lookup(ctx, "Acme")
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)
}

func TestSequenceAndResetCommands(t *testing.T) {
	a := setupTestApp(t)
	ctx := context.Background()

	require.NoError(t, run(t, "sequence", "set", "25"))
	assert.Equal(t, 25, a.Sequence.Current(ctx))
	assert.Error(t, run(t, "sequence", "set", "0"))

	require.NoError(t, run(t, "reset", "sequence", "--yes"))
	assert.Equal(t, 1, a.Sequence.Current(ctx))
}

func TestProfileSetCommand(t *testing.T) {
	a := setupTestApp(t)
	ctx := context.Background()
	require.NoError(t, a.Profile.Save(ctx, domain.BillerProfile{Name: "Old", Phone: "555-0100"}))

	require.NoError(t, run(t, "profile", "set", "--name", "Pat", "--payable-to", "Pat CSR"))
	p, err := a.Profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.BillerProfile{Name: "Pat", Phone: "555-0100", PayableToName: "Pat CSR"}, p)
}

func TestAddressesDeleteCommand(t *testing.T) {
	a := setupTestApp(t)
	ctx := context.Background()
	require.NoError(t, a.AddressBook.Upsert(ctx, domain.AddressRecord{Name: "A"}))
	require.NoError(t, a.AddressBook.Upsert(ctx, domain.AddressRecord{Name: "B"}))

	require.NoError(t, run(t, "addresses", "delete", "A", "--yes"))
	recs, _ := a.AddressBook.List(ctx)
	require.Len(t, recs, 1)
	assert.Equal(t, "B", recs[0].Name)
}

package app

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/depobill/internal/config"
	"github.com/andy/depobill/internal/domain"
	"github.com/andy/depobill/internal/export"
	"github.com/andy/depobill/internal/repository"
	"github.com/andy/depobill/internal/service"
)

func TestNewWithStore_ExportWritesToOutputDir(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	cfg.Export.OutputDir = t.TempDir()
	cfg.Export.Format = "html"

	a := NewWithStore(cfg, repository.NewMemoryKV(), log.New(io.Discard))
	assert.Equal(t, export.FormatHTML, a.ExportFormat())

	res, err := a.ExportService.Export(ctx, service.ExportRequest{
		Biller: domain.BillerProfile{Name: "Pat"},
		Client: domain.AddressRecord{Name: "Acme", Address: "1 Main St"},
		Date:   "2024-03-05",
	}, service.ExportOptions{Format: a.ExportFormat()})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.Export.OutputDir, "Invoice_1_2024-03-05.html"), res.Path)
	assert.Equal(t, 2, a.Sequence.Current(ctx))
	_, err = a.AddressBook.Lookup(ctx, "Acme")
	assert.NoError(t, err)
	assert.NoError(t, a.Close())
}

package draft

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/depobill/internal/config"
	"github.com/andy/depobill/internal/domain"
	"github.com/andy/depobill/internal/repository"
)

const sampleDraft = `
date: 2024-03-05
case_info: |
  Roe v. Doe
  No. 24-123
client:
  address_book: Acme Legal
  email: billing@acme.test
prefill:
  kind: deposition
  deponent: J. Smith
  pages: 100
  copies: 2
items:
  - description: Rush delivery
    unit_price: "25"
  - description: Parking
    quantity: "2"
    unit_price: "7.5"
`

var today = time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)

func TestParse_RejectsUnknownPrefill(t *testing.T) {
	_, err := Parse([]byte("prefill:\n  kind: transcript\n"))
	assert.ErrorIs(t, err, ErrUnknownPrefill)
}

func TestLedger_PrefillThenItems(t *testing.T) {
	d, err := Parse([]byte(sampleDraft))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", d.Date)

	l := d.Ledger(config.DefaultConfig().Prefill, today)
	rows := l.Rows()
	require.Len(t, rows, 4)

	// prefill date falls back to today
	assert.Equal(t, "DEPOSITION 03/06/24 - J. Smith - 100 pages", rows[0].Description)
	assert.True(t, rows[0].UnitPrice.Equal(decimal.RequireFromString("7.40")))
	assert.Equal(t, "Appearance Fee - 3h minimum", rows[1].Description)
	assert.Equal(t, "Rush delivery", rows[2].Description)
	assert.True(t, rows[2].Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, rows[3].Total().Equal(decimal.NewFromInt(15)))
}

func TestLedger_CopyPrefillRates(t *testing.T) {
	d, err := Parse([]byte("prefill:\n  kind: copy\n  date: 2025-01-02\n  pages: 10\n  rate: \"3\"\n  exhibits_color: 2\n"))
	require.NoError(t, err)

	rows := d.Ledger(config.DefaultConfig().Prefill, today).Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "COPY OF DEPOSITION 01/02/25 - 10 pages", rows[0].Description)
	assert.True(t, rows[0].Total().Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "Exhibits 2 Color", rows[1].Description)
	assert.True(t, rows[1].UnitPrice.Equal(decimal.NewFromInt(2)))
}

func TestRequest_ResolvesAddressBookAndProfile(t *testing.T) {
	ctx := context.Background()
	book := repository.NewAddressBookRepo(repository.NewMemoryKV(), log.New(io.Discard))
	require.NoError(t, book.Upsert(ctx, domain.AddressRecord{Name: "Acme Legal", Address: "1 Main St", Email: "old@acme.test"}))

	path := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDraft), 0644))
	d, err := Load(path)
	require.NoError(t, err)

	profile := domain.BillerProfile{Name: "Pat Reporter", PayableToName: "Pat CSR"}
	req, err := d.Request(ctx, profile, book, config.DefaultConfig().Prefill, today)
	require.NoError(t, err)

	assert.Equal(t, "Acme Legal", req.Client.Name)
	assert.Equal(t, "1 Main St", req.Client.Address)
	assert.Equal(t, "billing@acme.test", req.Client.Email)
	assert.Equal(t, "Pat Reporter", req.Biller.Name)
	assert.Equal(t, "Pat CSR", req.Biller.PayableToName)
	assert.Equal(t, "2024-03-05", req.Date)
	assert.Equal(t, 0, req.Number)
	assert.Len(t, req.Items, 4)
	assert.Contains(t, req.CaseInfo, "Roe v. Doe")
}

func TestRequest_MissingAddressBookEntry(t *testing.T) {
	book := repository.NewAddressBookRepo(repository.NewMemoryKV(), log.New(io.Discard))
	d, err := Parse([]byte("client:\n  address_book: Nobody\n"))
	require.NoError(t, err)

	_, err = d.Request(context.Background(), domain.BillerProfile{}, book, config.DefaultConfig().Prefill, today)
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)
}

func TestResolveClient_TrimsNames(t *testing.T) {
	ctx := context.Background()
	book := repository.NewAddressBookRepo(repository.NewMemoryKV(), log.New(io.Discard))
	require.NoError(t, book.Upsert(ctx, domain.AddressRecord{Name: "Acme Legal", Address: "1 Main St"}))

	d, err := Parse([]byte("client:\n  address_book: \"Acme Legal \"\n  name: \" Acme Legal  \"\n"))
	require.NoError(t, err)

	rec, err := d.ResolveClient(ctx, book)
	require.NoError(t, err)
	assert.Equal(t, "Acme Legal", rec.Name)
	assert.Equal(t, "1 Main St", rec.Address)
}

package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/depobill/internal/domain"
	"github.com/andy/depobill/internal/render"
)

func testDocument(t *testing.T) *render.Document {
	t.Helper()
	doc, err := render.Render(render.Input{
		Biller: domain.BillerProfile{Name: "Pat Reporter", Address: "9 Court Sq"},
		Client: domain.AddressRecord{Name: "Jané Roe", Address: "1 Main St\nSuite 4"},
		Number: 5,
		Date:   "2024-03-05",
		Items: []domain.LineItem{
			{Description: strings.Repeat("very long description ", 12), Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	return doc
}

func TestHTMLRasterizer(t *testing.T) {
	doc := testDocument(t)
	a, err := (&HTMLRasterizer{}).Rasterize(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "Invoice_5_2024-03-05.html", filepath.Base(a.Path))
	data, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "$20.00")

	require.NoError(t, a.Cleanup())
	_, err = os.Stat(a.Path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, a.Cleanup())
}

func TestPDFRasterizer(t *testing.T) {
	doc := testDocument(t)
	a, err := (&PDFRasterizer{}).Rasterize(context.Background(), doc)
	require.NoError(t, err)
	defer a.Cleanup()

	assert.Equal(t, FormatPDF, a.Format)
	data, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestRasterizer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, f := range []Format{FormatPDF, FormatHTML} {
		r, err := NewRasterizer(f)
		require.NoError(t, err)
		_, err = r.Rasterize(ctx, testDocument(t))
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("html")
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, f)

	_, err = ParseFormat("docx")
	assert.Error(t, err)
}

func writeArtifact(t *testing.T, body string) *Artifact {
	t.Helper()
	dir := t.TempDir()
	a := &Artifact{Path: filepath.Join(dir, "scratch.pdf"), Format: FormatPDF, dir: dir}
	require.NoError(t, os.WriteFile(a.Path, []byte(body), 0600))
	return a
}

func TestDirectSaver_NeverOverwrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "invoices")
	s := &DirectSaver{Dir: out}
	ctx := context.Background()

	first, err := s.Save(ctx, writeArtifact(t, "one"), "Invoice_1_2024-01-02.pdf")
	require.NoError(t, err)
	second, err := s.Save(ctx, writeArtifact(t, "two"), "Invoice_1_2024-01-02.pdf")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "Invoice_1_2024-01-02.pdf"), first)
	assert.Equal(t, filepath.Join(out, "Invoice_1_2024-01-02 (1).pdf"), second)

	data, _ := os.ReadFile(first)
	assert.Equal(t, "one", string(data))
	data, _ = os.ReadFile(second)
	assert.Equal(t, "two", string(data))
}

func TestPromptSaver(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("empty answer cancels", func(t *testing.T) {
		s := &PromptSaver{Prompt: func(ctx context.Context, name string) (string, error) { return "  ", nil }}
		_, err := s.Save(ctx, writeArtifact(t, "x"), "a.pdf")
		assert.ErrorIs(t, err, ErrCancelled)
	})

	t.Run("directory keeps suggested name", func(t *testing.T) {
		s := &PromptSaver{Prompt: func(ctx context.Context, name string) (string, error) { return dir, nil }}
		got, err := s.Save(ctx, writeArtifact(t, "x"), "Invoice_2_2024-01-02.pdf")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Invoice_2_2024-01-02.pdf"), got)
	})

	t.Run("explicit file path", func(t *testing.T) {
		target := filepath.Join(dir, "sub", "mine.pdf")
		s := &PromptSaver{Prompt: func(ctx context.Context, name string) (string, error) { return target, nil }}
		got, err := s.Save(ctx, writeArtifact(t, "body"), "a.pdf")
		require.NoError(t, err)
		assert.Equal(t, target, got)
		data, _ := os.ReadFile(target)
		assert.Equal(t, "body", string(data))
	})
}

// Package export turns a rendered Document into a file on disk.
// A Rasterizer produces the artifact in a private scratch directory and a
// Saver moves a copy of it to where the user wants it.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andy/depobill/internal/render"
)

// ErrCancelled means the user declined to pick a destination
var ErrCancelled = errors.New("export cancelled")

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

// ParseFormat accepts "pdf" or "html"
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatHTML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Artifact is a rendered file waiting to be saved
type Artifact struct {
	Path   string
	Format Format
	dir    string
}

// Cleanup removes the artifact's scratch directory. Safe to call more than once.
func (a *Artifact) Cleanup() error {
	if a == nil || a.dir == "" {
		return nil
	}
	return os.RemoveAll(a.dir)
}

// Rasterizer converts a Document into an Artifact
type Rasterizer interface {
	Rasterize(ctx context.Context, doc *render.Document) (*Artifact, error)
	Format() Format
}

// NewRasterizer returns the rasterizer for f
func NewRasterizer(f Format) (Rasterizer, error) {
	switch f {
	case FormatPDF:
		return &PDFRasterizer{}, nil
	case FormatHTML:
		return &HTMLRasterizer{}, nil
	}
	return nil, fmt.Errorf("unknown export format %q", f)
}

// newArtifact reserves a scratch directory for doc rendered as f
func newArtifact(doc *render.Document, f Format) (*Artifact, error) {
	dir, err := os.MkdirTemp("", "depobill-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return &Artifact{
		Path:   filepath.Join(dir, doc.Filename(string(f))),
		Format: f,
		dir:    dir,
	}, nil
}

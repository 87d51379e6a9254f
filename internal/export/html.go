package export

import (
	"context"
	"fmt"
	"os"

	"github.com/andy/depobill/internal/render"
)

// HTMLRasterizer writes the invoice as a standalone HTML page
type HTMLRasterizer struct{}

func (r *HTMLRasterizer) Format() Format { return FormatHTML }

func (r *HTMLRasterizer) Rasterize(ctx context.Context, doc *render.Document) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a, err := newArtifact(doc, FormatHTML)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(a.Path)
	if err != nil {
		a.Cleanup()
		return nil, fmt.Errorf("failed to create html file: %w", err)
	}
	if err := render.WriteHTML(f, doc); err != nil {
		f.Close()
		a.Cleanup()
		return nil, err
	}
	if err := f.Close(); err != nil {
		a.Cleanup()
		return nil, fmt.Errorf("failed to write html file: %w", err)
	}
	return a, nil
}

package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Saver materializes an artifact at its final location and returns the path written
type Saver interface {
	Save(ctx context.Context, a *Artifact, suggestedName string) (string, error)
}

// DirectSaver writes into Dir without asking. An existing file is never
// overwritten; "Invoice_3_2024-01-02 (1).pdf" style names are used instead.
type DirectSaver struct {
	Dir string
}

func (s *DirectSaver) Save(ctx context.Context, a *Artifact, suggestedName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	dest, err := uniquePath(filepath.Join(s.Dir, filepath.Base(suggestedName)))
	if err != nil {
		return "", err
	}
	if err := copyFile(a.Path, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// PromptFunc asks where to save. Returning "" or ErrCancelled cancels.
type PromptFunc func(ctx context.Context, suggestedName string) (string, error)

// PromptSaver lets the user choose the destination. A directory answer
// keeps the suggested file name.
type PromptSaver struct {
	Prompt PromptFunc
}

func (s *PromptSaver) Save(ctx context.Context, a *Artifact, suggestedName string) (string, error) {
	dest, err := s.Prompt(ctx, suggestedName)
	if err != nil {
		return "", err
	}
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return "", ErrCancelled
	}

	dest = expandHome(dest)
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, filepath.Base(suggestedName))
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("failed to create destination directory: %w", err)
	}

	if err := copyFile(a.Path, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// uniquePath returns path, or the first "name (n).ext" variant that does not exist
func uniquePath(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 1; n < 1000; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("too many files named like %s", filepath.Base(path))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

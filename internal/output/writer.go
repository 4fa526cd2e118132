package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type writeCategory string

const (
	categoryCourse   writeCategory = "course"
	categoryAsset    writeCategory = "asset"
	categoryTemplate writeCategory = "template"
)

// writeFileRequest describes a file write routed through the artifact writer.
type writeFileRequest struct {
	Path     string
	Content  io.Reader
	Category writeCategory
}

// artifactWriter abstracts where generator outputs end up.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
}

func newArtifactWriter(dryRun bool) artifactWriter {
	if dryRun {
		return noopWriter{}
	}
	return diskWriter{}
}

// diskWriter writes to the local filesystem. Files are written to a temporary
// sibling first and renamed into place.
type diskWriter struct{}

func (diskWriter) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("output: ensure dir %s: %w", path, err)
	}
	return nil
}

func (w diskWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if req.Content == nil {
		return errors.New("output: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("output: write requires path")
	}
	dir := filepath.Dir(req.Path)
	if err := w.EnsureDir(ctx, dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(req.Path)+".*")
	if err != nil {
		return fmt.Errorf("output: write %s %s: %w", req.Category, req.Path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, req.Content); err != nil {
		tmp.Close()
		return fmt.Errorf("output: write %s %s: %w", req.Category, req.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("output: write %s %s: %w", req.Category, req.Path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("output: write %s %s: %w", req.Category, req.Path, err)
	}
	if err := os.Rename(tmp.Name(), req.Path); err != nil {
		return fmt.Errorf("output: write %s %s: %w", req.Category, req.Path, err)
	}
	return nil
}

type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(context.Context, writeFileRequest) error { return nil }

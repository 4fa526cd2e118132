package output

import (
	"context"
	"embed"
	"io/fs"
	"path/filepath"
	"slices"
)

//go:embed templates
var templateFiles embed.FS

// TemplateNames lists the static files written next to the course document.
func TemplateNames() []string {
	entries, err := fs.ReadDir(templateFiles, "templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return names
}

// TemplateWriter copies the embedded static files into the output directory.
type TemplateWriter struct {
	writer artifactWriter
	opts   options
}

// NewTemplateWriter builds a TemplateWriter.
func NewTemplateWriter(opts ...Option) *TemplateWriter {
	o := applyOptions(opts)
	return &TemplateWriter{writer: newArtifactWriter(o.dryRun), opts: o}
}

// Write copies every template into outputDir and returns the written paths.
func (w *TemplateWriter) Write(ctx context.Context, outputDir string) ([]string, error) {
	var written []string
	for _, name := range TemplateNames() {
		file, err := templateFiles.Open("templates/" + name)
		if err != nil {
			return written, err
		}
		target := filepath.Join(outputDir, name)
		err = w.writer.WriteFile(ctx, writeFileRequest{
			Path:     target,
			Content:  file,
			Category: categoryTemplate,
		})
		file.Close()
		if err != nil {
			return written, err
		}
		written = append(written, target)
	}
	w.opts.logger.Debug("output.templates.written", "count", len(written))
	return written, nil
}

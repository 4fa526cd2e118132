package markdown

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a parsed markdown file.
type Document struct {
	Path        string
	Title       string
	Summary     string
	Body        string
	FrontMatter map[string]any
}

// ReaderConfig configures a Reader.
type ReaderConfig struct {
	// BasePath is the absolute course directory the filesystem is rooted at.
	BasePath string
}

// Reader resolves absolute course paths against an fs.FS.
type Reader struct {
	fs       fs.FS
	basePath string
}

// NewReader constructs a Reader over filesystem.
func NewReader(filesystem fs.FS, cfg ReaderConfig) *Reader {
	base := ""
	if strings.TrimSpace(cfg.BasePath) != "" {
		base = filepath.Clean(cfg.BasePath)
	}
	return &Reader{fs: filesystem, basePath: base}
}

// NewDirReader roots a Reader at a directory on disk.
func NewDirReader(basePath string) (*Reader, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("markdown reader: resolve %s: %w", basePath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("markdown reader: stat base path %s: %w", abs, err)
	}
	return NewReader(os.DirFS(abs), ReaderConfig{BasePath: abs}), nil
}

// FS exposes the underlying filesystem.
func (r *Reader) FS() fs.FS { return r.fs }

// BasePath returns the directory the filesystem is rooted at.
func (r *Reader) BasePath() string { return r.basePath }

// ReadWholeFile returns the contents of path as text.
func (r *Reader) ReadWholeFile(path string) (string, error) {
	data, err := r.read(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadFirstLine returns the first line of path without line terminators.
func (r *Reader) ReadFirstLine(path string) (string, error) {
	text, err := r.ReadWholeFile(path)
	if err != nil {
		return "", err
	}
	return FirstLine(text), nil
}

// ReadMarkdown parses path into a Document. A malformed front matter block
// still yields the body, title and summary alongside the error.
func (r *Reader) ReadMarkdown(path string) (*Document, error) {
	data, err := r.read(path)
	if err != nil {
		return nil, err
	}

	meta, body, parseErr := ParseFrontMatter(data)
	doc := &Document{
		Path:        path,
		Title:       HeaderFromBody(body),
		Summary:     SummaryFromBody(body),
		Body:        body,
		FrontMatter: meta,
	}
	if parseErr != nil {
		return doc, fmt.Errorf("markdown reader %s: %w", path, parseErr)
	}
	return doc, nil
}

// ReadYAML decodes path into generic values suitable for JSON encoding. An
// empty document decodes to nil.
func (r *Reader) ReadYAML(path string) (any, error) {
	data, err := r.read(path)
	if err != nil {
		return nil, err
	}
	var out any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("markdown reader: decode yaml %s: %w", path, err)
	}
	return Normalize(out), nil
}

func (r *Reader) read(path string) ([]byte, error) {
	rel, err := r.makeRelative(path)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(r.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown reader read %s: %w", path, err)
	}
	return data, nil
}

// Rel converts an absolute course path into an fs.FS path.
func (r *Reader) Rel(path string) (string, error) {
	return r.makeRelative(path)
}

func (r *Reader) makeRelative(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("markdown reader: empty path")
	}
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return filepath.ToSlash(clean), nil
	}
	if r.basePath == "" {
		return "", fmt.Errorf("markdown reader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(r.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("markdown reader: make relative %s: %w", path, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("markdown reader: %s is outside %s", path, r.basePath)
	}
	return rel, nil
}

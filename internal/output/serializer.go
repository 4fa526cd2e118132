package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// ErrNilCourse is returned when asked to serialize a missing document.
var ErrNilCourse = errors.New("output: course is nil")

// WriteResult describes a written course document.
type WriteResult struct {
	Path  string
	Bytes int
	// ValidationErr holds the schema violations of the document, if any.
	ValidationErr error
}

// Serializer writes the course document as indented JSON.
type Serializer struct {
	writer artifactWriter
	opts   options
}

var _ interfaces.CourseSerializer = (*Serializer)(nil)

// NewSerializer builds a Serializer.
func NewSerializer(opts ...Option) *Serializer {
	o := applyOptions(opts)
	return &Serializer{writer: newArtifactWriter(o.dryRun), opts: o}
}

// Encode renders course as UTF-8 JSON indented by two spaces. HTML characters
// are kept verbatim.
func Encode(course *interfaces.LearningObject) ([]byte, error) {
	if course == nil {
		return nil, ErrNilCourse
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(course); err != nil {
		return nil, fmt.Errorf("output: encode course: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write satisfies interfaces.CourseSerializer.
func (s *Serializer) Write(ctx context.Context, course *interfaces.LearningObject, outputDir string) (string, error) {
	res, err := s.WriteDocument(ctx, course, outputDir)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// WriteDocument encodes course, validates it when a validator is configured
// and writes it to <outputDir>/<file name>, creating outputDir if needed.
func (s *Serializer) WriteDocument(ctx context.Context, course *interfaces.LearningObject, outputDir string) (*WriteResult, error) {
	data, err := Encode(course)
	if err != nil {
		return nil, err
	}

	res := &WriteResult{
		Path:  filepath.Join(outputDir, s.opts.fileName),
		Bytes: len(data),
	}
	if s.opts.validate != nil {
		if verr := s.opts.validate(data); verr != nil {
			res.ValidationErr = verr
			s.opts.logger.Warn("output.course.invalid", "path", res.Path, "error", verr)
		}
	}

	if err := s.writer.EnsureDir(ctx, outputDir); err != nil {
		return nil, err
	}
	if err := s.writer.WriteFile(ctx, writeFileRequest{
		Path:     res.Path,
		Content:  bytes.NewReader(data),
		Category: categoryCourse,
	}); err != nil {
		return nil, err
	}

	s.opts.logger.Info("output.course.written", "path", res.Path, "bytes", res.Bytes)
	return res, nil
}

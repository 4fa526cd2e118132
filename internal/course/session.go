package course

import (
	"github.com/goliatone/go-tutors/internal/logging"
	"github.com/goliatone/go-tutors/internal/markdown"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// ContentReader reads the files a resource lists. markdown.Reader satisfies it.
type ContentReader interface {
	ReadMarkdown(path string) (*markdown.Document, error)
	ReadWholeFile(path string) (string, error)
	ReadFirstLine(path string) (string, error)
	ReadYAML(path string) (any, error)
}

var _ ContentReader = (*markdown.Reader)(nil)

// session holds the state of a single build: the diagnostics collected so far.
// A new session is started for every Build or Assemble call.
type session struct {
	reader      ContentReader
	logger      interfaces.Logger
	diagnostics []interfaces.Diagnostic
}

func newSession(reader ContentReader, logger interfaces.Logger) *session {
	return &session{reader: reader, logger: logger}
}

func (s *session) report(operation, path string, err error) {
	if err == nil {
		return
	}
	s.diagnostics = append(s.diagnostics, interfaces.Diagnostic{
		Operation: operation,
		Path:      path,
		Err:       err,
	})
	logging.WithDiagnosticContext(s.logger, operation, path).Warn("course.build.diagnostic", "error", err)
}

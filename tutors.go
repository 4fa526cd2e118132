// Package tutors compiles a course directory into the tutors.json document
// read by the Tutors course reader.
package tutors

import (
	"context"
	"errors"
	"strings"

	generatecmd "github.com/goliatone/go-tutors/internal/commands/generate"
	"github.com/goliatone/go-tutors/internal/di"
	"github.com/goliatone/go-tutors/internal/generator"
	"github.com/goliatone/go-tutors/internal/logging"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// GeneratorService exports the generator contract.
type GeneratorService = generator.Service

// Result exports the outcome of a generation run.
type Result = generator.Result

// LearningObject exports a node of the generated course.
type LearningObject = interfaces.LearningObject

// Diagnostic exports a recoverable failure recorded during a run.
type Diagnostic = interfaces.Diagnostic

// ErrCourseFileMissing is returned when a course.md is required but absent.
var ErrCourseFileMissing = generatecmd.ErrCourseFileMissing

// Module is the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using cfg and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container.
func (m *Module) Container() *di.Container {
	return m.container
}

// Generator returns the configured generator service.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// Logger returns a module logger from the configured provider.
func (m *Module) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(m.container.LoggerProvider(), module)
}

// Generate runs the generate command once for the configured course.
func (m *Module) Generate(ctx context.Context) (*Result, error) {
	var result *Result
	cmd := m.container.GenerateCommand()
	cmd.ResultCallback = func(r *generator.Result) { result = r }
	err := m.container.GenerateHandler().Execute(ctx, cmd)
	return result, err
}

// Watch generates the course, then regenerates it whenever its files change
// until ctx is cancelled. A failed initial run aborts when course.md is
// missing; any other failure is logged and watching continues.
func (m *Module) Watch(ctx context.Context, onResult func(*Result, error)) error {
	logger := m.Logger("tutors.watch")

	result, err := m.Generate(ctx)
	if onResult != nil {
		onResult(result, err)
	}
	if err != nil {
		if errors.Is(err, ErrCourseFileMissing) {
			return err
		}
		logger.Error("watch.initial_run.failed", "error", err)
	}

	w, err := m.container.NewWatcher(func(ctx context.Context, changed []string) error {
		logger.Info("watch.regenerate", "changed", strings.Join(changed, ","))
		result, err := m.Generate(ctx)
		if onResult != nil {
			onResult(result, err)
		}
		return err
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

package generatecmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-tutors/internal/commands"
	"github.com/goliatone/go-tutors/internal/generator"
	"github.com/goliatone/go-tutors/internal/logging"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// CourseFile marks a directory as a course root.
const CourseFile = "course.md"

// ErrCourseFileMissing is returned when RequireCourseFile is set and the course
// directory has no course.md.
var ErrCourseFileMissing = errors.New("generate: course.md not found, change to a course folder and try again")

var _ command.Commander[GenerateCourseCommand] = (*GenerateCourseHandler)(nil)

// GenerateCourseHandler runs the generator behind the shared command handler.
type GenerateCourseHandler struct {
	inner *commands.Handler[GenerateCourseCommand]
}

// NewGenerateCourseHandler constructs a handler wired to service.
func NewGenerateCourseHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[GenerateCourseCommand]) *GenerateCourseHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg GenerateCourseCommand) error {
		if service == nil {
			return generator.ErrServiceDisabled
		}
		if msg.RequireCourseFile {
			if err := requireCourseFile(msg.CourseDir); err != nil {
				return err
			}
		}

		result, err := service.Generate(ctx, generator.GenerateOptions{
			CourseDir: msg.CourseDir,
			OutputDir: msg.OutputDir,
			DryRun:    msg.DryRun,
		})
		if result != nil {
			reportDiagnostics(baseLogger, result)
			if msg.ResultCallback != nil {
				msg.ResultCallback(result)
			}
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[GenerateCourseCommand]{
		commands.WithLogger[GenerateCourseCommand](baseLogger),
		commands.WithOperation[GenerateCourseCommand]("course.generate"),
		commands.WithMessageFields(func(msg GenerateCourseCommand) map[string]any {
			fields := map[string]any{"course_dir": msg.CourseDir}
			if msg.OutputDir != "" {
				fields["output_dir"] = msg.OutputDir
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[GenerateCourseCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &GenerateCourseHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[GenerateCourseCommand].
func (h *GenerateCourseHandler) Execute(ctx context.Context, msg GenerateCourseCommand) error {
	return h.inner.Execute(ctx, msg)
}

func requireCourseFile(dir string) error {
	info, err := os.Stat(filepath.Join(dir, CourseFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrCourseFileMissing
		}
		return fmt.Errorf("generate: stat %s: %w", CourseFile, err)
	}
	if info.IsDir() {
		return ErrCourseFileMissing
	}
	return nil
}

func reportDiagnostics(logger interfaces.Logger, result *generator.Result) {
	if len(result.Diagnostics) == 0 && result.ValidationErr == nil {
		return
	}
	logger = logging.WithRunID(logger, result.RunID)
	if len(result.Diagnostics) > 0 {
		logger.Warn("course.generate.diagnostics", "count", len(result.Diagnostics))
	}
	if result.ValidationErr != nil {
		logger.Warn("course.generate.schema_mismatch", "error", result.ValidationErr)
	}
}

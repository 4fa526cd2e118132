package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-tutors/pkg/interfaces"
)

const (
	rootModule      = "tutors"
	courseModule    = "tutors.course"
	resourcesModule = "tutors.resources"
	outputModule    = "tutors.output"
	generatorModule = "tutors.generator"
	watchModule     = "tutors.watch"
)

const (
	fieldCoursePath = "course_path"
	fieldOperation  = "operation"
	fieldRunID      = "run_id"
)

// ModuleLogger returns a logger scoped to module, falling back to a no-op
// logger when provider is nil or hands back nothing. The module name is
// attached as the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// CourseLogger is used by the learning object builder and course assembler.
func CourseLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, courseModule)
}

// ResourcesLogger is used by resource discovery.
func ResourcesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, resourcesModule)
}

// OutputLogger is used by the serializer, asset copier and template writer.
func OutputLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, outputModule)
}

// GeneratorLogger is used by the generation pipeline.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// WatchLogger is used by the rebuild-on-change loop.
func WatchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, watchModule)
}

// WithDiagnosticContext annotates logger with the operation and path of a
// recovered failure. Empty values are skipped.
func WithDiagnosticContext(logger interfaces.Logger, operation, path string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(operation); trimmed != "" {
		fields[fieldOperation] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldCoursePath] = trimmed
	}
	return WithFields(logger, fields)
}

// WithRunID tags every entry of logger with the id of a generation run.
func WithRunID(logger interfaces.Logger, runID string) interfaces.Logger {
	if strings.TrimSpace(runID) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldRunID: runID})
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}

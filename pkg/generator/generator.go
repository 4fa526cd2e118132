// Package generator exposes the course generation API for hosts embedding
// go-tutors. Use NewService with Config and Dependencies to compile a course
// directory into tutors.json.
package generator

import internal "github.com/goliatone/go-tutors/internal/generator"

type (
	Service         = internal.Service
	Config          = internal.Config
	GenerateOptions = internal.GenerateOptions
	Result          = internal.Result
	Dependencies    = internal.Dependencies
	ContentSource   = internal.ContentSource
)

var (
	ErrServiceDisabled   = internal.ErrServiceDisabled
	ErrCourseDirRequired = internal.ErrCourseDirRequired
)

// DefaultOutputDir is the output directory used when none is configured.
const DefaultOutputDir = internal.DefaultOutputDir

// NewService wires a course generator with the supplied configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	return internal.NewService(cfg, deps)
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return internal.NewDisabledService()
}

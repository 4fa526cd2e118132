package generator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-tutors/internal/course"
	"github.com/goliatone/go-tutors/internal/logging"
	"github.com/goliatone/go-tutors/internal/markdown"
	"github.com/goliatone/go-tutors/internal/output"
	"github.com/goliatone/go-tutors/internal/resources"
	"github.com/goliatone/go-tutors/internal/validation"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled = errors.New("generator: service disabled")
	// ErrCourseDirRequired is returned when no course directory is configured.
	ErrCourseDirRequired = errors.New("generator: course directory is required")
)

// DefaultOutputDir is the output directory name used when none is configured,
// relative to the course directory.
const DefaultOutputDir = "json"

// Service generates the course document of a course directory.
type Service interface {
	Generate(ctx context.Context, opts GenerateOptions) (*Result, error)
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	CourseDir      string
	OutputDir      string
	OutputFile     string
	CopyAssets     bool
	Templates      bool
	ValidateOutput bool
}

// GenerateOptions narrows a single run.
type GenerateOptions struct {
	// CourseDir overrides Config.CourseDir for this run.
	CourseDir string
	// OutputDir overrides Config.OutputDir for this run.
	OutputDir string
	DryRun    bool
}

// Result reports what a run produced.
type Result struct {
	RunID         string
	Course        *interfaces.LearningObject
	OutputPath    string
	Diagnostics   []interfaces.Diagnostic
	AssetsCopied  int
	Templates     []string
	ValidationErr error
	Duration      time.Duration
	DryRun        bool
}

// ContentSource reads course files. markdown.Reader satisfies it.
type ContentSource interface {
	course.ContentReader
	output.SourceFS
}

// Dependencies lists the collaborators of the generator. Nil entries are
// created for every run from the course directory on disk.
type Dependencies struct {
	Discoverer interfaces.ResourceDiscoverer
	Source     ContentSource
	Logger     interfaces.LoggerProvider
	Validator  func([]byte) error
	Clock      func() time.Time
	IDs        func() string
}

// NewService wires a generator implementation.
func NewService(cfg Config, deps Dependencies) Service {
	if deps.Validator == nil {
		deps.Validator = validation.ValidateDocument
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.IDs == nil {
		deps.IDs = uuid.NewString
	}
	return &service{cfg: cfg, deps: deps}
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg  Config
	deps Dependencies
}

type disabledService struct{}

func (disabledService) Generate(context.Context, GenerateOptions) (*Result, error) {
	return nil, ErrServiceDisabled
}

// Generate discovers the course, assembles its document, copies assets,
// writes tutors.json and the static templates. Per-file failures become
// diagnostics on the result; only discovery and writing the document can fail
// the run.
func (s *service) Generate(ctx context.Context, opts GenerateOptions) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	courseDir, outputDir, err := s.resolveDirs(opts)
	if err != nil {
		return nil, err
	}

	start := s.deps.Clock()
	runID := s.deps.IDs()
	logger := logging.WithRunID(logging.GeneratorLogger(s.deps.Logger), runID)
	ctx = logging.ContextWithFields(ctx, map[string]any{"run_id": runID})
	logger.Info("generator.run.start", "course_dir", courseDir, "output_dir", outputDir, "dry_run", opts.DryRun)

	source, discoverer, err := s.collaborators(courseDir, outputDir)
	if err != nil {
		return nil, err
	}

	root, err := discoverer.Discover(ctx, courseDir)
	if err != nil {
		logger.Error("generator.discover.failed", "error", err)
		return nil, fmt.Errorf("generator: discover %s: %w", courseDir, err)
	}

	courseLogger := logging.WithRunID(logging.CourseLogger(s.deps.Logger), runID)
	doc, diags := course.NewAssembler(source, course.WithLogger(courseLogger)).Assemble(root)

	result := &Result{
		RunID:       runID,
		Course:      doc,
		Diagnostics: diags,
		DryRun:      opts.DryRun,
	}

	outputLogger := logging.WithRunID(logging.OutputLogger(s.deps.Logger), runID)
	outputOpts := []output.Option{
		output.WithLogger(outputLogger),
		output.WithDryRun(opts.DryRun),
		output.WithFileName(s.cfg.OutputFile),
	}

	if s.cfg.CopyAssets {
		copied, assetDiags, err := output.NewAssetCopier(source, outputOpts...).Copy(ctx, root, outputDir)
		result.AssetsCopied = copied
		result.Diagnostics = append(result.Diagnostics, assetDiags...)
		if err != nil {
			return result, fmt.Errorf("generator: copy assets: %w", err)
		}
	}

	serializerOpts := outputOpts
	if s.cfg.ValidateOutput {
		serializerOpts = append(serializerOpts, output.WithValidator(s.deps.Validator))
	}
	written, err := output.NewSerializer(serializerOpts...).WriteDocument(ctx, doc, outputDir)
	if err != nil {
		logger.Error("generator.write.failed", "error", err)
		return result, fmt.Errorf("generator: write course: %w", err)
	}
	result.OutputPath = written.Path
	result.ValidationErr = written.ValidationErr

	if s.cfg.Templates {
		templates, err := output.NewTemplateWriter(outputOpts...).Write(ctx, outputDir)
		result.Templates = templates
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, interfaces.Diagnostic{
				Operation: "copyTemplate",
				Path:      outputDir,
				Err:       err,
			})
		}
	}

	result.Duration = s.deps.Clock().Sub(start)
	logger.Info("generator.run.completed",
		"output", result.OutputPath,
		"diagnostics", len(result.Diagnostics),
		"assets", result.AssetsCopied,
		"duration", result.Duration,
	)
	return result, nil
}

func (s *service) resolveDirs(opts GenerateOptions) (string, string, error) {
	courseDir := firstNonEmpty(opts.CourseDir, s.cfg.CourseDir)
	if courseDir == "" {
		return "", "", ErrCourseDirRequired
	}
	courseDir, err := filepath.Abs(courseDir)
	if err != nil {
		return "", "", fmt.Errorf("generator: resolve course dir: %w", err)
	}

	outputDir := firstNonEmpty(opts.OutputDir, s.cfg.OutputDir)
	if outputDir == "" {
		outputDir = filepath.Join(courseDir, DefaultOutputDir)
	}
	outputDir, err = filepath.Abs(outputDir)
	if err != nil {
		return "", "", fmt.Errorf("generator: resolve output dir: %w", err)
	}
	return courseDir, outputDir, nil
}

// collaborators returns the configured source and discoverer, or fresh ones
// rooted at courseDir. The output directory is excluded from discovery when it
// lives inside the course.
func (s *service) collaborators(courseDir, outputDir string) (ContentSource, interfaces.ResourceDiscoverer, error) {
	source := s.deps.Source
	if source == nil {
		reader, err := markdown.NewDirReader(courseDir)
		if err != nil {
			return nil, nil, fmt.Errorf("generator: %w", err)
		}
		source = reader
	}

	discoverer := s.deps.Discoverer
	if discoverer == nil {
		var exclude []string
		if rel, err := filepath.Rel(courseDir, outputDir); err == nil && rel != "." && !strings.HasPrefix(filepath.ToSlash(rel), "../") {
			exclude = append(exclude, rel)
		}
		discoverer = resources.NewDiscoverer(source.FS(), resources.DiscovererConfig{
			BasePath: courseDir,
			Exclude:  exclude,
			Logger:   logging.ResourcesLogger(s.deps.Logger),
		})
	}
	return source, discoverer, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

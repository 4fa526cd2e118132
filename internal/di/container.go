package di

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-tutors/internal/commands"
	generatecmd "github.com/goliatone/go-tutors/internal/commands/generate"
	"github.com/goliatone/go-tutors/internal/generator"
	"github.com/goliatone/go-tutors/internal/logging"
	"github.com/goliatone/go-tutors/internal/logging/console"
	"github.com/goliatone/go-tutors/internal/logging/gologger"
	"github.com/goliatone/go-tutors/internal/runtimeconfig"
	"github.com/goliatone/go-tutors/internal/watch"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// Container wires module dependencies from a runtime config.
type Container struct {
	Config runtimeconfig.Config

	logWriter      io.Writer
	loggerProvider interfaces.LoggerProvider
	generatorSvc   generator.Service
	discoverer     interfaces.ResourceDiscoverer
	generate       *generatecmd.GenerateCourseHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithLogWriter redirects the console provider. Defaults to stderr.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		c.logWriter = w
	}
}

// WithGeneratorService overrides the generator implementation.
func WithGeneratorService(svc generator.Service) Option {
	return func(c *Container) {
		if svc != nil {
			c.generatorSvc = svc
		}
	}
}

// WithDiscoverer overrides on-disk course discovery.
func WithDiscoverer(d interfaces.ResourceDiscoverer) Option {
	return func(c *Container) {
		c.discoverer = d
	}
}

// NewContainer validates cfg and wires the logger provider, generator service
// and generate command handler.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureGenerator()

	logging.ModuleLogger(c.loggerProvider, "tutors").Debug("container.configured",
		"course_dir", cfg.CourseDir,
		"output_dir", cfg.ResolvedOutputDir(),
		"logging_provider", cfg.Logging.Provider,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		level := console.ParseLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   c.logWriter,
			MinLevel: &level,
		})
	}
	return nil
}

func (c *Container) configureGenerator() {
	if c.generatorSvc == nil {
		c.generatorSvc = generator.NewService(generator.Config{
			CourseDir:      c.Config.CourseDir,
			OutputDir:      c.Config.OutputDir,
			OutputFile:     c.Config.OutputFile,
			CopyAssets:     c.Config.CopyAssets,
			Templates:      c.Config.Templates,
			ValidateOutput: c.Config.ValidateOutput,
		}, generator.Dependencies{
			Discoverer: c.discoverer,
			Logger:     c.loggerProvider,
		})
	}
	c.generate = generatecmd.NewGenerateCourseHandler(
		c.generatorSvc,
		commands.CommandLogger(c.loggerProvider, "generate"),
	)
}

// LoggerProvider returns the configured provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// GeneratorService returns the configured generator.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

// GenerateHandler returns the command handler running the generator.
func (c *Container) GenerateHandler() *generatecmd.GenerateCourseHandler {
	return c.generate
}

// GenerateCommand builds a generate command from the config.
func (c *Container) GenerateCommand() generatecmd.GenerateCourseCommand {
	return generatecmd.GenerateCourseCommand{
		CourseDir:         c.Config.CourseDir,
		OutputDir:         c.Config.OutputDir,
		RequireCourseFile: c.Config.RequireCourseFile,
	}
}

// NewWatcher returns a watcher over the course directory that skips the
// output directory.
func (c *Container) NewWatcher(onChange watch.ChangeFunc) (*watch.Watcher, error) {
	outputDir, err := filepath.Abs(c.Config.ResolvedOutputDir())
	if err != nil {
		return nil, fmt.Errorf("di: resolve output dir: %w", err)
	}
	return watch.New(watch.Config{
		BaseDir:     c.Config.CourseDir,
		Ignore:      c.Config.Watch.Ignore,
		ExcludeDirs: []string{outputDir},
		Debounce:    c.Config.Watch.Debounce,
		OnChange:    onChange,
		Logger:      logging.WatchLogger(c.loggerProvider),
	})
}

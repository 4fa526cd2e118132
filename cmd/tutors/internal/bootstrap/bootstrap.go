package bootstrap

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goliatone/go-tutors"
	"github.com/goliatone/go-tutors/internal/commands"
	"github.com/goliatone/go-tutors/internal/di"
	"github.com/goliatone/go-tutors/internal/generator"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// Options captures configuration shared by the tutors command line tools.
type Options struct {
	CourseDir         string
	OutputDir         string
	LogProvider       string
	LogLevel          string
	LogFormat         string
	NoAssets          bool
	NoTemplates       bool
	NoValidate        bool
	RequireCourseFile bool
	Debounce          time.Duration
	Ignore            []string
	LoggerProvider    interfaces.LoggerProvider
	LogWriter         io.Writer
}

// Watcher regenerates a course on change until ctx is cancelled.
type Watcher interface {
	Watch(ctx context.Context, onResult func(*tutors.Result, error)) error
}

// Module wraps the tutors module with what the binaries need.
type Module struct {
	Config    tutors.Config
	Generator generator.Service
	Watcher   Watcher
	Logger    interfaces.Logger
}

// RegisterFlags binds the common flags onto fs. withWatch adds the watch flags.
func RegisterFlags(fs *flag.FlagSet, withWatch bool) *Options {
	defaults := tutors.DefaultConfig()
	opts := &Options{}
	fs.StringVar(&opts.CourseDir, "course-dir", defaults.CourseDir, "Path to the course root")
	fs.StringVar(&opts.OutputDir, "output-dir", "", "Output directory (defaults to <course-dir>/json)")
	fs.StringVar(&opts.LogProvider, "log-provider", defaults.Logging.Provider, "Logging provider: console or gologger")
	fs.StringVar(&opts.LogLevel, "log-level", defaults.Logging.Level, "Minimum log level")
	fs.StringVar(&opts.LogFormat, "log-format", "", "go-logger format: json, console or pretty")
	fs.BoolVar(&opts.NoAssets, "no-assets", false, "Skip copying images, pdfs and archives")
	fs.BoolVar(&opts.NoTemplates, "no-templates", false, "Skip writing index.html and netlify.toml")
	fs.BoolVar(&opts.NoValidate, "no-validate", false, "Skip checking tutors.json against the schema")
	if withWatch {
		fs.DurationVar(&opts.Debounce, "debounce", defaults.Watch.Debounce, "Quiet period before regenerating")
		fs.Func("ignore", "Glob of paths to ignore while watching (repeatable)", func(value string) error {
			if value = strings.TrimSpace(value); value != "" {
				opts.Ignore = append(opts.Ignore, value)
			}
			return nil
		})
	}
	return opts
}

// Config maps opts onto the runtime config.
func (o Options) Config() tutors.Config {
	cfg := tutors.DefaultConfig()
	if dir := strings.TrimSpace(o.CourseDir); dir != "" {
		cfg.CourseDir = dir
	}
	cfg.OutputDir = strings.TrimSpace(o.OutputDir)
	if provider := strings.TrimSpace(o.LogProvider); provider != "" {
		cfg.Logging.Provider = provider
	}
	if level := strings.TrimSpace(o.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	cfg.Logging.Format = strings.TrimSpace(o.LogFormat)
	cfg.CopyAssets = !o.NoAssets
	cfg.Templates = !o.NoTemplates
	cfg.ValidateOutput = !o.NoValidate
	cfg.RequireCourseFile = o.RequireCourseFile
	if o.Debounce > 0 {
		cfg.Watch.Debounce = o.Debounce
	}
	cfg.Watch.Ignore = append([]string(nil), o.Ignore...)
	return cfg
}

// BuildModule constructs a tutors module from opts.
func BuildModule(opts Options) (*Module, error) {
	cfg := opts.Config()

	var diOpts []di.Option
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}
	if opts.LogWriter != nil {
		diOpts = append(diOpts, di.WithLogWriter(opts.LogWriter))
	}

	module, err := tutors.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise tutors module: %w", err)
	}

	return &Module{
		Config:    cfg,
		Generator: module.Generator(),
		Watcher:   module,
		Logger:    commands.CommandLogger(module.Container().LoggerProvider(), "cli"),
	}, nil
}

// Summary renders a one line report of a run.
func Summary(result *tutors.Result) string {
	if result == nil {
		return "no course generated"
	}
	var b strings.Builder
	if result.DryRun {
		b.WriteString("dry run: ")
	}
	title := ""
	if result.Course != nil {
		title = result.Course.Title
	}
	fmt.Fprintf(&b, "%q -> %s", title, result.OutputPath)
	fmt.Fprintf(&b, " (%d assets, %d diagnostics, %s)", result.AssetsCopied, len(result.Diagnostics), result.Duration.Round(time.Millisecond))
	if result.ValidationErr != nil {
		b.WriteString(" schema mismatch")
	}
	return b.String()
}

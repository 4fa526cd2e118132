package runtimeconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrCourseDirRequired        = errors.New("tutors config: course directory is required")
	ErrOutputDirSameAsCourseDir = errors.New("tutors config: output directory must differ from the course directory")
	ErrOutputFileInvalid        = errors.New("tutors config: output file must be a plain file name")
	ErrWatchDebounceInvalid     = errors.New("tutors config: watch debounce must be zero or positive")
	ErrLoggingProviderRequired  = errors.New("tutors config: logging provider is required")
	ErrLoggingProviderUnknown   = errors.New("tutors config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("tutors config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("tutors config: logging format is invalid")
)

// Config aggregates the settings of a generation or watch run.
type Config struct {
	// CourseDir is the course root. Relative paths resolve against the
	// working directory.
	CourseDir string
	// OutputDir receives tutors.json, assets and templates. Empty means
	// "json" inside CourseDir.
	OutputDir  string
	OutputFile string
	CopyAssets bool
	Templates  bool
	// ValidateOutput checks tutors.json against the embedded schema.
	ValidateOutput bool
	// RequireCourseFile refuses to run when CourseDir has no course.md.
	RequireCourseFile bool
	Watch             WatchConfig
	Logging           LoggingConfig
}

// WatchConfig captures the behaviour of tutors-mon.
type WatchConfig struct {
	Debounce time.Duration
	// Ignore are doublestar patterns relative to the course directory.
	Ignore []string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the settings used by the command line tools.
func DefaultConfig() Config {
	return Config{
		CourseDir:      ".",
		OutputFile:     "tutors.json",
		CopyAssets:     true,
		Templates:      true,
		ValidateOutput: true,
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// ResolvedOutputDir returns OutputDir, defaulting to CourseDir/json.
func (cfg Config) ResolvedOutputDir() string {
	if dir := strings.TrimSpace(cfg.OutputDir); dir != "" {
		return dir
	}
	return filepath.Join(cfg.CourseDir, "json")
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.CourseDir) == "" {
		return ErrCourseDirRequired
	}
	if out := strings.TrimSpace(cfg.OutputDir); out != "" && samePath(out, cfg.CourseDir) {
		return ErrOutputDirSameAsCourseDir
	}
	if name := cfg.OutputFile; name != "" && (filepath.Base(name) != name || name == "." || name == "..") {
		return fmt.Errorf("%w: %s", ErrOutputFileInvalid, name)
	}
	if cfg.Watch.Debounce < 0 {
		return ErrWatchDebounceInvalid
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

// Package watch regenerates a course when its files change.
//
// A Watcher registers every non-ignored directory of the course with fsnotify
// and invokes OnChange once events have been quiet for the debounce period.
// Runs never overlap: events arriving during a run are kept and delivered
// after it.
package watch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-tutors/internal/logging"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// DefaultDebounce is the quiet period before OnChange fires.
const DefaultDebounce = 500 * time.Millisecond

var (
	// ErrAlreadyRunning is returned when Run is called a second time.
	ErrAlreadyRunning = errors.New("watch: Run called more than once")
	// ErrWatcherClosed is returned when fsnotify closes its channels unexpectedly.
	ErrWatcherClosed = errors.New("watch: fsnotify channel closed")
)

// defaultIgnores are always excluded: VCS metadata, dependency caches, editor
// swap files and OS metadata.
var defaultIgnores = []string{
	"**/.git/**",
	"**/.git",
	"**/node_modules/**",
	"**/node_modules",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

// ChangeFunc receives the sorted, de-duplicated paths changed since the last
// run, relative to the watched directory.
type ChangeFunc func(ctx context.Context, changed []string) error

// Config holds the parameters of a Watcher.
type Config struct {
	// BaseDir is the course directory. Defaults to the working directory.
	BaseDir string
	// Ignore are extra doublestar patterns, relative to BaseDir.
	Ignore []string
	// ExcludeDirs are directories, relative to BaseDir or absolute, whose
	// contents never trigger a run. Typically the output directory.
	ExcludeDirs []string
	Debounce    time.Duration
	OnChange    ChangeFunc
	Logger      interfaces.Logger
}

// Watcher monitors a course directory. Run must be called exactly once.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	ignores  []string
	excluded []string
	debounce time.Duration
	baseDir  string
	logger   interfaces.Logger
	started  atomic.Bool
}

// New resolves BaseDir, validates the ignore patterns and registers every
// non-ignored directory for monitoring.
func New(cfg Config) (*Watcher, error) {
	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	if err := validatePatterns(cfg.Ignore); err != nil {
		return nil, err
	}

	ignores := slices.Clone(defaultIgnores)
	ignores = append(ignores, cfg.Ignore...)

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  ignores,
		excluded: excludedDirs(absBase, cfg.ExcludeDirs),
		debounce: debounce,
		baseDir:  absBase,
		logger:   logger,
	}
	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Warn("watch.close.failed", "error", closeErr)
		}
		return nil, err
	}
	return w, nil
}

// Close releases the fsnotify watcher of a Watcher that was never run.
func (w *Watcher) Close() error {
	if w.started.Load() {
		return nil
	}
	return w.fsw.Close()
}

// BaseDir returns the absolute watched directory.
func (w *Watcher) BaseDir() string { return w.baseDir }

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and an error when fsnotify fails fatally.
// Callback errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		stopped bool
		running atomic.Bool
		flight  sync.WaitGroup
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		mu.Lock()
		if stopped {
			mu.Unlock()
			return
		}
		flight.Add(1)
		mu.Unlock()
		defer flight.Done()

		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("watch.run.busy")
			mu.Lock()
			if timer != nil && !stopped {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		w.logger.Info("watch.change.detected", "files", len(changed))
		if w.cfg.OnChange == nil {
			return
		}
		if err := w.cfg.OnChange(ctx, changed); err != nil {
			w.logger.Error("watch.callback.failed", "error", err)
		}
	}

	// In-flight callbacks finish before Run returns.
	defer func() {
		mu.Lock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		flight.Wait()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("watch.close.failed", "error", err)
		}
	}()

	w.logger.Info("watch.start", "base_dir", w.baseDir, "debounce", w.debounce)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch.stop")
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return ErrWatcherClosed
			}
			rel, err := filepath.Rel(w.baseDir, evt.Name)
			if err != nil {
				rel = evt.Name
			}
			if w.isIgnored(rel) {
				continue
			}
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			mu.Lock()
			pending[filepath.ToSlash(rel)] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			if isFatal(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("watch.fsnotify.error", "error", err)
		}
	}
}

func (w *Watcher) addDirectories() error {
	err := filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			w.logger.Warn("watch.path.skipped", "path", path, "error", walkErr)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.baseDir, path)
		if err != nil {
			return nil
		}
		if rel != "." && w.isIgnored(rel) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk directory tree: %w", err)
	}
	return nil
}

// maybeAddDir extends the watch to directories created after startup.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil || w.isIgnored(rel) {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.logger.Warn("watch.add.failed", "path", path, "error", err)
	}
}

func (w *Watcher) isIgnored(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, dir := range w.excluded {
		if rel == dir || strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}
	return matchAny(w.ignores, rel)
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

func validatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if _, err := doublestar.Match(pattern, ""); err != nil {
			return fmt.Errorf("watch: invalid ignore pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// excludedDirs normalizes dirs to slash paths relative to base. Directories
// outside base are dropped.
func excludedDirs(base string, dirs []string) []string {
	var out []string
	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		if filepath.IsAbs(dir) {
			rel, err := filepath.Rel(base, dir)
			if err != nil {
				continue
			}
			dir = rel
		}
		dir = filepath.ToSlash(filepath.Clean(dir))
		if dir == "." || dir == ".." || strings.HasPrefix(dir, "../") {
			continue
		}
		out = append(out, dir)
	}
	return out
}

// isFatal reports resource exhaustion: inotify watch limit or file
// descriptor limits.
func isFatal(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}

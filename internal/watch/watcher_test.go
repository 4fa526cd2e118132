package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func startWatcher(t *testing.T, cfg Config) (context.CancelFunc, <-chan error) {
	t.Helper()
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	return cancel, errCh
}

func stop(t *testing.T, cancel context.CancelFunc, errCh <-chan error) {
	t.Helper()
	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for Run to return")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWatcherDebouncesChanges(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	var (
		mu        sync.Mutex
		calls     int
		collected []string
	)
	done := make(chan struct{})

	cancel, errCh := startWatcher(t, Config{
		BaseDir:  dir,
		Debounce: 100 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			collected = append(collected, changed...)
			if calls == 1 {
				close(done)
			}
			return nil
		},
	})

	for _, name := range []string{"course.md", "topic.md", "unit.md"} {
		writeFile(t, filepath.Join(dir, name), "# x\n")
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	time.Sleep(200 * time.Millisecond)
	stop(t, cancel, errCh)

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected one debounced callback, got %d", calls)
	}
	for _, want := range []string{"course.md", "topic.md", "unit.md"} {
		if !slices.Contains(collected, want) {
			t.Fatalf("expected %q in %v", want, collected)
		}
	}
}

func TestWatcherSkipsExcludedOutputDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	output := filepath.Join(dir, "json")
	if err := os.MkdirAll(output, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	fired := make(chan []string, 10)
	cancel, errCh := startWatcher(t, Config{
		BaseDir:     dir,
		ExcludeDirs: []string{output},
		Ignore:      []string{"**/*.log"},
		Debounce:    50 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			fired <- changed
			return nil
		},
	})

	writeFile(t, filepath.Join(output, "tutors.json"), "{}")
	writeFile(t, filepath.Join(dir, "debug.log"), "log")
	time.Sleep(200 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "course.md"), "# Course\n")

	select {
	case changed := <-fired:
		if slices.Contains(changed, "json/tutors.json") || slices.Contains(changed, "debug.log") {
			t.Fatalf("ignored paths reported: %v", changed)
		}
		if !slices.Contains(changed, "course.md") {
			t.Fatalf("expected course.md in %v", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	stop(t, cancel, errCh)
}

func TestWatcherKeepsRunningAfterCallbackError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	calls := make(chan struct{}, 10)
	cancel, errCh := startWatcher(t, Config{
		BaseDir:  dir,
		Debounce: 50 * time.Millisecond,
		OnChange: func(context.Context, []string) error {
			calls <- struct{}{}
			return errors.New("generation failed")
		},
	})

	for i := range 2 {
		writeFile(t, filepath.Join(dir, "course.md"), "# Course\n")
		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for callback %d", i+1)
		}
	}
	stop(t, cancel, errCh)
}

func TestWatcherWatchesNewDirectories(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	fired := make(chan []string, 10)
	cancel, errCh := startWatcher(t, Config{
		BaseDir:  dir,
		Debounce: 50 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			fired <- changed
			return nil
		},
	})

	if err := os.Mkdir(filepath.Join(dir, "topic-01"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	<-fired
	writeFile(t, filepath.Join(dir, "topic-01", "topic.md"), "# Topic\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case changed := <-fired:
			if slices.Contains(changed, "topic-01/topic.md") {
				stop(t, cancel, errCh)
				return
			}
		case <-deadline:
			t.Fatal("expected change in new directory to be reported")
		}
	}
}

func TestWatcherRunTwice(t *testing.T) {
	t.Parallel()
	w, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := w.Run(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestDefaultIgnores(t *testing.T) {
	t.Parallel()
	for _, path := range []string{".git/HEAD", "topic/.git/config", "node_modules/x/y.js", "course.md.swp", ".DS_Store"} {
		if !matchAny(DefaultIgnores(), path) {
			t.Fatalf("expected %s to be ignored", path)
		}
	}
	if matchAny(DefaultIgnores(), "topic-01/topic.md") {
		t.Fatal("expected course files to be watched")
	}
}

func TestExcludedDirs(t *testing.T) {
	t.Parallel()
	base := filepath.Join(string(filepath.Separator), "course")
	got := excludedDirs(base, []string{filepath.Join(base, "json"), "public/", "", filepath.Join(string(filepath.Separator), "elsewhere")})
	if !slices.Equal(got, []string{"json", "public"}) {
		t.Fatalf("unexpected excluded dirs %v", got)
	}
}

func TestWatcherRunWaitsForInFlightCallback(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	started := make(chan struct{})
	var finished atomic.Bool

	cancel, errCh := startWatcher(t, Config{
		BaseDir:  dir,
		Debounce: 20 * time.Millisecond,
		OnChange: func(ctx context.Context, _ []string) error {
			close(started)
			<-ctx.Done()
			time.Sleep(100 * time.Millisecond)
			finished.Store(true)
			return nil
		},
	})

	writeFile(t, filepath.Join(dir, "course.md"), "# x\n")
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("callback never started")
	}

	stop(t, cancel, errCh)
	if !finished.Load() {
		t.Fatal("Run returned before the in-flight callback finished")
	}
}

package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-tutors"
	"github.com/goliatone/go-tutors/cmd/tutors/internal/bootstrap"
	"github.com/goliatone/go-tutors/internal/logging"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

type stubWatcher struct {
	results []*tutors.Result
	errs    []error
	err     error
}

func (s *stubWatcher) Watch(_ context.Context, onResult func(*tutors.Result, error)) error {
	for i, r := range s.results {
		onResult(r, s.errs[i])
	}
	return s.err
}

func TestRunMonRequiresCourseFileAndReportsRuns(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	watcher := &stubWatcher{
		results: []*tutors.Result{
			{Course: &interfaces.LearningObject{Title: "First"}, OutputPath: "json/tutors.json"},
			nil,
		},
		errs: []error{nil, errors.New("discover failed")},
	}
	var captured bootstrap.Options
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		captured = opts
		return &bootstrap.Module{Config: opts.Config(), Watcher: watcher, Logger: logging.NoOp()}, nil
	}

	var out bytes.Buffer
	if err := runMon(context.Background(), []string{"-debounce", "250ms"}, &out); err != nil {
		t.Fatalf("runMon returned error: %v", err)
	}
	if !captured.RequireCourseFile {
		t.Fatal("expected tutors-mon to require course.md")
	}
	if captured.Debounce.String() != "250ms" {
		t.Fatalf("unexpected debounce %s", captured.Debounce)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], `"First"`) || !strings.Contains(lines[1], "generation failed: discover failed") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunMonPropagatesWatchError(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{Config: opts.Config(), Watcher: &stubWatcher{err: tutors.ErrCourseFileMissing}}, nil
	}
	err := runMon(context.Background(), nil, &bytes.Buffer{})
	if !errors.Is(err, tutors.ErrCourseFileMissing) {
		t.Fatalf("expected ErrCourseFileMissing, got %v", err)
	}
}

package generator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-tutors/pkg/generator"
)

func TestPublicServiceGeneratesCourse(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "course.md"), []byte("# Public Course\n"), 0o644); err != nil {
		t.Fatalf("write course.md: %v", err)
	}

	svc := generator.NewService(generator.Config{CourseDir: dir}, generator.Dependencies{})
	result, err := svc.Generate(context.Background(), generator.GenerateOptions{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if want := filepath.Join(dir, generator.DefaultOutputDir, "tutors.json"); result.OutputPath != want {
		t.Fatalf("expected %s, got %s", want, result.OutputPath)
	}
}

func TestPublicDisabledService(t *testing.T) {
	_, err := generator.NewDisabledService().Generate(context.Background(), generator.GenerateOptions{})
	if !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}

package output

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-tutors/pkg/interfaces"
)

func sampleCourse() *interfaces.LearningObject {
	return &interfaces.LearningObject{
		ID:        "course",
		Route:     "/",
		RoutePath: "/course",
		Type:      interfaces.ResourceTypeCourse,
		Title:     "Demo <Course>",
		Children: []*interfaces.LearningObject{
			{ID: "topic-1", Type: interfaces.ResourceTypeTopic, Route: "/topic/{{COURSEURL}}/topic-1"},
		},
	}
}

func TestSerializerWritesIndentedDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "json")
	s := NewSerializer()

	path, err := s.Write(context.Background(), sampleCourse(), dir)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != filepath.Join(dir, "tutors.json") {
		t.Fatalf("unexpected path %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "{\n  \"route\": \"/\",\n  \"routePath\": \"/course\",") {
		t.Fatalf("expected two space indentation, got %s", text[:min(len(text), 80)])
	}
	if !strings.Contains(text, `"title": "Demo <Course>"`) {
		t.Fatalf("expected HTML characters to be kept")
	}
	if strings.HasSuffix(text, "\n") {
		t.Fatalf("expected no trailing newline")
	}
}

func TestSerializerIsDeterministic(t *testing.T) {
	first, err := Encode(sampleCourse())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := Encode(sampleCourse())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(first) != string(second) {
		t.Fatal("expected identical encodings")
	}
}

func TestSerializerReportsValidationWithoutBlocking(t *testing.T) {
	dir := t.TempDir()
	invalid := errors.New("bad document")
	s := NewSerializer(WithValidator(func([]byte) error { return invalid }))

	res, err := s.WriteDocument(context.Background(), sampleCourse(), dir)
	if err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	if !errors.Is(res.ValidationErr, invalid) {
		t.Fatalf("expected validation error to be recorded, got %v", res.ValidationErr)
	}
	if _, err := os.Stat(res.Path); err != nil {
		t.Fatalf("expected document to be written: %v", err)
	}
}

func TestSerializerDryRunSkipsWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "json")
	s := NewSerializer(WithDryRun(true), WithFileName("course.json"))

	res, err := s.WriteDocument(context.Background(), sampleCourse(), dir)
	if err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	if filepath.Base(res.Path) != "course.json" || res.Bytes == 0 {
		t.Fatalf("unexpected result %#v", res)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected no output directory, got %v", err)
	}
}

func TestSerializerRejectsNilCourse(t *testing.T) {
	if _, err := NewSerializer().Write(context.Background(), nil, t.TempDir()); !errors.Is(err, ErrNilCourse) {
		t.Fatalf("expected ErrNilCourse, got %v", err)
	}
}

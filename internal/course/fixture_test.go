package course

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-tutors/internal/markdown"
	"github.com/goliatone/go-tutors/internal/resources"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

const courseBase = "/course"

func courseFS() fstest.MapFS {
	file := func(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }
	return fstest.MapFS{
		"course.md":                       file("# Demo Course\n\nA course about things.\n"),
		"properties.yaml":                 file("credits: Demo\nignore:\n  - topic-02\n"),
		"enrollment.yaml":                 file("students:\n  - ada@example.com\n"),
		"topic-01/topic.md":               file("---\nicon: home\n---\n# Topic One\n\nFirst topic.\n"),
		"topic-01/topic.png":              file("png"),
		"topic-01/unit-1/unit.md":         file("# Unit One\n"),
		"topic-01/unit-1/talk-1/talk.md":  file("# Talk One\n\nSlides.\n"),
		"topic-01/unit-1/talk-1/talk.pdf": file("%PDF"),
		"topic-01/unit-1/talk-2/talk.md":  file("# Talk Two\n"),
		"topic-01/unit-1/talk-2/videoid":  file("abc123\nheanet=xyz987\n"),
		"topic-01/side-1/side.md":         file("# Aside\n"),
		"topic-01/book-a/01.intro.md":     file("# Intro\nWelcome.\n"),
		"topic-01/book-a/02.setup.md":     file("# Setup\r\nInstall.\n"),
		"topic-01/book-a/img/main.png":    file("png"),
		"topic-01/note-1/note.md":         file("# Note\n"),
		"topic-01/note-1/unit-9/unit.md":  file("# Hidden Unit\n"),
		"topic-01/web-1/weburl":           file("https://tutors.dev\n"),
		"topic-01/github-1/githubid":      file("tutors-sdk/tutors\r\n"),
		"topic-01/archive-1/code.zip":     file("zip"),
		"topic-01/panelvideo-1/videoid":   file("vid42\n"),
		"topic-01/topic-02/topic.md":      file("# Nested Topic Two\n"),
		"topic-02/topic.md":               file("# Topic Two\n"),
	}
}

func discover(t *testing.T, fsys fstest.MapFS) (*interfaces.LearningResource, *markdown.Reader) {
	t.Helper()
	d := resources.NewDiscoverer(fsys, resources.DiscovererConfig{BasePath: courseBase})
	root, err := d.Discover(context.Background(), courseBase)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	return root, markdown.NewReader(fsys, markdown.ReaderConfig{BasePath: courseBase})
}

func childByID(t *testing.T, lo *interfaces.LearningObject, id string) *interfaces.LearningObject {
	t.Helper()
	for _, child := range lo.Children {
		if child.ID == id {
			return child
		}
	}
	t.Fatalf("child %q not found under %q", id, lo.ID)
	return nil
}

package course

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-tutors/pkg/interfaces"
)

func buildTopic(t *testing.T) (*interfaces.LearningObject, []interfaces.Diagnostic) {
	t.Helper()
	root, reader := discover(t, courseFS())
	topic := root.LRs[0]
	if topic.ID != "topic-01" {
		t.Fatalf("unexpected first resource %q", topic.ID)
	}
	return NewBuilder(reader).Build(topic, 1)
}

func TestBuildDefaultObject(t *testing.T) {
	topic, diags := buildTopic(t)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}

	if topic.Route != "/topic/{{COURSEURL}}/topic-01" {
		t.Fatalf("unexpected route %q", topic.Route)
	}
	if topic.RoutePath != "/course/topic-01" {
		t.Fatalf("unexpected route path %q", topic.RoutePath)
	}
	if topic.Title != "Topic One" || topic.Summary != "First topic." {
		t.Fatalf("unexpected title/summary %q / %q", topic.Title, topic.Summary)
	}
	if topic.FrontMatter["icon"] != "home" {
		t.Fatalf("expected front matter, got %v", topic.FrontMatter)
	}
	if topic.Img != "https://{{COURSEURL}}/topic-01/topic.png" || topic.ImgPath != "/course/topic-01/topic.png" {
		t.Fatalf("unexpected image links %q / %q", topic.Img, topic.ImgPath)
	}
	if topic.Video != "" || topic.VideoIDs.VideoID != "" || len(topic.VideoIDs.VideoIDs) != 0 {
		t.Fatalf("expected no video, got %q %#v", topic.Video, topic.VideoIDs)
	}
}

func TestBuildOrdersChildrenByPrecedence(t *testing.T) {
	topic, _ := buildTopic(t)

	want := []string{"unit-1", "side-1", "book-a", "note-1", "web-1", "github-1", "archive-1", "panelvideo-1", "topic-02"}
	if len(topic.Children) != len(want) {
		t.Fatalf("expected %d children, got %d", len(want), len(topic.Children))
	}
	for i, id := range want {
		if topic.Children[i].ID != id {
			t.Fatalf("child %d: expected %s, got %s", i, id, topic.Children[i].ID)
		}
	}
}

func TestBuildTypeRefinements(t *testing.T) {
	topic, _ := buildTopic(t)

	cases := map[string]string{
		"unit-1":       "/topic/{{COURSEURL}}/topic-01/",
		"side-1":       "/topic/{{COURSEURL}}/topic-01/",
		"web-1":        "https://tutors.dev",
		"github-1":     "tutors-sdk/tutors",
		"archive-1":    "https://{{COURSEURL}}/topic-01/archive-1/code.zip",
		"panelvideo-1": "/video/{{COURSEURL}}/topic-01/panelvideo-1/vid42",
		"note-1":       "/note/{{COURSEURL}}/topic-01/note-1",
	}
	for id, route := range cases {
		if got := childByID(t, topic, id).Route; got != route {
			t.Fatalf("%s: expected route %q, got %q", id, route, got)
		}
	}
}

func TestBuildTalkRoutes(t *testing.T) {
	topic, _ := buildTopic(t)
	unit := childByID(t, topic, "unit-1")

	withPdf := childByID(t, unit, "talk-1")
	if withPdf.Route != "/talk/{{COURSEURL}}/topic-01/unit-1/talk-1" {
		t.Fatalf("talk with pdf must keep its route, got %q", withPdf.Route)
	}
	if withPdf.Pdf != "https://{{COURSEURL}}/topic-01/unit-1/talk-1/talk.pdf" {
		t.Fatalf("unexpected pdf %q", withPdf.Pdf)
	}

	videoOnly := childByID(t, unit, "talk-2")
	if videoOnly.Route != "/video/{{COURSEURL}}/topic-01/unit-1/talk-2/xyz987" {
		t.Fatalf("talk without pdf must route to its video, got %q", videoOnly.Route)
	}
	if videoOnly.VideoIDs.VideoID != "xyz987" || len(videoOnly.VideoIDs.VideoIDs) != 2 {
		t.Fatalf("unexpected video ids %#v", videoOnly.VideoIDs)
	}
}

func TestBuildSkipsRecursionForLabAndNote(t *testing.T) {
	topic, _ := buildTopic(t)

	for _, id := range []string{"book-a", "note-1"} {
		lo := childByID(t, topic, id)
		if len(lo.Children) != 0 {
			t.Fatalf("%s: expected no learning object children, got %d", id, len(lo.Children))
		}
	}
}

func TestBuildUnknownTypeIsPassedThrough(t *testing.T) {
	fsys := fstest.MapFS{"misc/readme.md": {Data: []byte("# Misc\n")}}
	root, reader := discover(t, fsys)

	lo, diags := NewBuilder(reader).Build(root.LRs[0], 1)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
	if lo.Type != interfaces.ResourceTypeUnknown || lo.Route != "/unknown/{{COURSEURL}}/misc" {
		t.Fatalf("unexpected object %s %q", lo.Type, lo.Route)
	}
	if lo.Title != "Misc" {
		t.Fatalf("unexpected title %q", lo.Title)
	}
}

func TestBuildWithoutMarkdownYieldsEmptyContent(t *testing.T) {
	fsys := fstest.MapFS{"topic-1/cover.png": {Data: []byte("png")}}
	root, reader := discover(t, fsys)

	lo, diags := NewBuilder(reader).Build(root.LRs[0], 1)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
	if lo.Title != "" || lo.Summary != "" || lo.ContentMd != "" {
		t.Fatalf("expected empty content, got %#v", lo)
	}
	if lo.FrontMatter == nil || len(lo.FrontMatter) != 0 {
		t.Fatalf("expected empty front matter map, got %#v", lo.FrontMatter)
	}
}

func TestBuildReportsMissingMarkerAsDiagnostic(t *testing.T) {
	fsys := fstest.MapFS{"web-1/web.md": {Data: []byte("# Link\n")}}
	root, reader := discover(t, fsys)

	lo, diags := NewBuilder(reader).Build(root.LRs[0], 1)
	if lo.Route != "" {
		t.Fatalf("expected empty route, got %q", lo.Route)
	}
	if len(diags) != 1 || !errors.Is(diags[0], ErrMarkerMissing) {
		t.Fatalf("expected missing marker diagnostic, got %v", diags)
	}
	if diags[0].Operation != "readFirstLine" {
		t.Fatalf("unexpected operation %q", diags[0].Operation)
	}
}

func TestBuildReportsUnreadableFile(t *testing.T) {
	lr := &interfaces.LearningResource{
		CourseRoot: courseBase,
		Route:      courseBase + "/topic-1",
		ID:         "topic-1",
		Type:       interfaces.ResourceTypeTopic,
		Files:      []string{courseBase + "/topic-1/missing.md"},
	}
	_, reader := discover(t, fstest.MapFS{"x": {Data: []byte("")}})

	lo, diags := NewBuilder(reader).Build(lr, 0)
	if lo.Title != "" {
		t.Fatalf("expected empty title, got %q", lo.Title)
	}
	if len(diags) != 1 || diags[0].Operation != "readMarkdown" || diags[0].Path != courseBase+"/topic-1/missing.md" {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
}

func TestTopicRoute(t *testing.T) {
	cases := []struct {
		route string
		kind  interfaces.ResourceType
		want  string
	}{
		{"/unit/{{COURSEURL}}/topic-1/unit-1", interfaces.ResourceTypeUnit, "/topic/{{COURSEURL}}/topic-1/"},
		{"/side/{{COURSEURL}}/topic-1/side-a", interfaces.ResourceTypeSide, "/topic/{{COURSEURL}}/topic-1/"},
		{"unit", interfaces.ResourceTypeUnit, "/"},
	}
	for _, tc := range cases {
		if got := topicRoute(tc.route, tc.kind); got != tc.want {
			t.Fatalf("topicRoute(%q) = %q, want %q", tc.route, got, tc.want)
		}
	}
}

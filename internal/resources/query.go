package resources

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// File extensions recognised by the builder.
var (
	ImageTypes    = []string{".png", ".jpg", ".jpeg", ".gif"}
	PdfTypes      = []string{".pdf"}
	ArchiveTypes  = []string{".zip"}
	MarkdownTypes = []string{".md"}
	AssetTypes    = slices.Concat(ImageTypes, PdfTypes, ArchiveTypes)
)

// Marker file names read by exact match.
const (
	WebURLFile     = "weburl"
	GithubIDFile   = "githubid"
	VideoIDFile    = "videoid"
	PropertiesFile = "properties.yaml"
	CalendarFile   = "calendar.yaml"
	EnrollmentFile = "enrollment.yaml"
)

// FileWithName returns the file of lr whose base name equals name, or "".
func FileWithName(lr *interfaces.LearningResource, name string) string {
	if lr == nil {
		return ""
	}
	for _, file := range lr.Files {
		if filepath.Base(file) == name {
			return file
		}
	}
	return ""
}

// FileWithType returns the first file of lr whose extension is one of types.
func FileWithType(lr *interfaces.LearningResource, types ...string) string {
	if lr == nil {
		return ""
	}
	for _, file := range lr.Files {
		if HasType(file, types...) {
			return file
		}
	}
	return ""
}

// FilesWithType returns every file of lr whose extension is one of types, in
// listing order.
func FilesWithType(lr *interfaces.LearningResource, types ...string) []string {
	if lr == nil {
		return nil
	}
	var out []string
	for _, file := range lr.Files {
		if HasType(file, types...) {
			out = append(out, file)
		}
	}
	return out
}

// HasType reports whether the extension of file equals one of types. Types may
// be given with or without the leading dot; comparison is exact.
func HasType(file string, types ...string) bool {
	ext := filepath.Ext(file)
	if ext == "" {
		return false
	}
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, ".") {
			t = "." + t
		}
		if t == ext {
			return true
		}
	}
	return false
}

// ID returns the last segment of the resource route.
func ID(lr *interfaces.LearningResource) string {
	if lr == nil || lr.Route == "" {
		return ""
	}
	return filepath.Base(filepath.Clean(lr.Route))
}

// Child returns the immediate child resource with the given id.
func Child(lr *interfaces.LearningResource, id string) *interfaces.LearningResource {
	if lr == nil {
		return nil
	}
	for _, child := range lr.LRs {
		if child != nil && child.ID == id {
			return child
		}
	}
	return nil
}

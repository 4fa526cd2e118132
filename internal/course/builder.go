package course

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-tutors/internal/logging"
	"github.com/goliatone/go-tutors/internal/resources"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// ErrMarkerMissing is reported when a resource type needs a marker file the
// directory does not contain.
var ErrMarkerMissing = errors.New("course: marker file not found")

// Option configures a Builder or Assembler.
type Option func(*options)

type options struct {
	logger interfaces.Logger
}

// WithLogger sets the logger diagnostics are written to.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Builder converts Learning Resources into Learning Objects.
type Builder struct {
	reader ContentReader
	logger interfaces.Logger
}

// NewBuilder returns a Builder reading resource files through reader.
func NewBuilder(reader ContentReader, opts ...Option) *Builder {
	o := applyOptions(opts)
	return &Builder{reader: reader, logger: o.logger}
}

// Build converts lr and its subtree. Failures reading individual files never
// abort the build: the affected fields are left empty and the failure is
// returned as a diagnostic.
func (b *Builder) Build(lr *interfaces.LearningResource, depth int) (*interfaces.LearningObject, []interfaces.Diagnostic) {
	s := newSession(b.reader, b.logger)
	lo := s.build(lr, depth)
	return lo, s.diagnostics
}

func (s *session) build(lr *interfaces.LearningResource, depth int) *interfaces.LearningObject {
	lo := s.defaultObject(lr)

	switch lo.Type {
	case interfaces.ResourceTypeUnit, interfaces.ResourceTypeSide:
		lo.Route = topicRoute(lo.Route, lo.Type)
	case interfaces.ResourceTypeLab:
		s.buildLab(lo, lr)
	case interfaces.ResourceTypeTalk:
		if lo.Pdf == "" {
			lo.Route = lo.Video
		}
	case interfaces.ResourceTypePanelVideo:
		lo.Route = lo.Video
	case interfaces.ResourceTypeWeb:
		lo.Route = s.markerLine(lr, resources.WebURLFile)
	case interfaces.ResourceTypeGithub:
		lo.Route = s.markerLine(lr, resources.GithubIDFile)
	case interfaces.ResourceTypeArchive:
		lo.Route = lo.Zip
	case interfaces.ResourceTypeNone,
		interfaces.ResourceTypeNote,
		interfaces.ResourceTypePanelNote,
		interfaces.ResourceTypePanelTalk,
		interfaces.ResourceTypeTopic,
		interfaces.ResourceTypeBook,
		interfaces.ResourceTypeUnknown,
		interfaces.ResourceTypeCourse:
	default:
	}

	if lo.Type == interfaces.ResourceTypeLab || lo.Type == interfaces.ResourceTypeNote {
		return lo
	}

	children := make([]*interfaces.LearningObject, 0, len(lr.LRs))
	for _, child := range lr.LRs {
		if child == nil {
			continue
		}
		children = append(children, s.build(child, depth+1))
	}
	sortByPrecedence(children)
	lo.Children = children

	s.logger.Trace("course.build.node",
		"id", lo.ID,
		"type", string(lo.Type),
		"depth", depth,
		"children", len(children),
	)
	return lo
}

func (s *session) defaultObject(lr *interfaces.LearningResource) *interfaces.LearningObject {
	lo := &interfaces.LearningObject{
		ID:          resources.ID(lr),
		Route:       resources.Route(lr),
		RoutePath:   resources.RoutePath(lr),
		Type:        lr.Type,
		FrontMatter: map[string]any{},
	}

	if file := resources.FileWithType(lr, resources.MarkdownTypes...); file != "" {
		doc, err := s.reader.ReadMarkdown(file)
		s.report("readMarkdown", file, err)
		if doc != nil {
			lo.Title = doc.Title
			lo.Summary = doc.Summary
			lo.ContentMd = doc.Body
			if doc.FrontMatter != nil {
				lo.FrontMatter = doc.FrontMatter
			}
		}
	}

	img := resources.Image(lr)
	lo.Img, lo.ImgPath = img.Public, img.Path
	pdf := resources.Pdf(lr)
	lo.Pdf, lo.PdfPath = pdf.Public, pdf.Path
	zip := resources.Archive(lr)
	lo.Zip, lo.ZipPath = zip.Public, zip.Path

	lo.VideoIDs = s.videoIdentifiers(lr)
	lo.Video = resources.VideoRoute(lr, lo.VideoIDs.VideoID)
	return lo
}

func (s *session) videoIdentifiers(lr *interfaces.LearningResource) interfaces.VideoIdentifiers {
	empty := interfaces.VideoIdentifiers{VideoIDs: []interfaces.VideoIdentifier{}}

	file := resources.FileWithName(lr, resources.VideoIDFile)
	if file == "" {
		return empty
	}
	text, err := s.reader.ReadWholeFile(file)
	if err != nil {
		s.report("readVideoIds", file, err)
		return empty
	}
	videos, err := resources.ParseVideoIdentifiers(text)
	s.report("readVideoIds", file, err)
	return videos
}

// markerLine returns the first line of the named marker file of lr.
func (s *session) markerLine(lr *interfaces.LearningResource, name string) string {
	file := resources.FileWithName(lr, name)
	if file == "" {
		s.report("readFirstLine", lr.Route, fmt.Errorf("%w: %s", ErrMarkerMissing, name))
		return ""
	}
	line, err := s.reader.ReadFirstLine(file)
	if err != nil {
		s.report("readFirstLine", file, err)
		return ""
	}
	return strings.TrimSpace(line)
}

// topicRoute maps a unit or side route onto the route of its topic: the last
// segment is dropped and the type segment becomes /topic.
func topicRoute(route string, kind interfaces.ResourceType) string {
	if idx := strings.LastIndex(route, "/"); idx >= 0 {
		route = route[:idx]
	} else {
		route = ""
	}
	route += "/"
	return strings.Replace(route, "/"+string(kind), "/topic", 1)
}

package course

import (
	"path/filepath"
	"strings"

	"github.com/goliatone/go-tutors/internal/markdown"
	"github.com/goliatone/go-tutors/internal/resources"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// buildLab replaces the content of lo with one step per markdown file of lr,
// in listing order. The lab title becomes the short title of its first step.
func (s *session) buildLab(lo *interfaces.LearningObject, lr *interfaces.LearningResource) {
	route := resources.Route(lr)
	routePath := resources.RoutePath(lr)

	lo.Title = ""
	steps := []interfaces.LabStep{}
	for _, file := range resources.FilesWithType(lr, resources.MarkdownTypes...) {
		body := ""
		doc, err := s.reader.ReadMarkdown(file)
		s.report("readMarkdown", file, err)
		if doc != nil {
			body = doc.Body
		}

		short := ShortTitle(file)
		if lo.Title == "" {
			lo.Title = short
		}
		steps = append(steps, interfaces.LabStep{
			Title:      markdown.FirstLine(body),
			ShortTitle: short,
			ContentMd:  body,
			Route:      route + "/" + short,
			RoutePath:  routePath + "/" + short,
			ID:         short,
		})
	}
	lo.LabSteps = steps
	lo.Children = nil

	img := resources.LabImage(lr)
	lo.Img, lo.ImgPath = img.Public, img.Path
}

// ShortTitle extracts the step name from a file named <order>.<name>.md: the
// part of the base name strictly between the first and the last dot. Names
// with fewer than two dots have an empty short title.
func ShortTitle(file string) string {
	base := filepath.Base(strings.ReplaceAll(file, `\`, "/"))
	first := strings.Index(base, ".")
	last := strings.LastIndex(base, ".")
	if first < 0 || first == last {
		return ""
	}
	return base[first+1 : last]
}

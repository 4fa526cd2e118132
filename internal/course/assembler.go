package course

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-tutors/internal/resources"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// CourseRoute is the route of the assembled course document.
const CourseRoute = "/"

// Assembler builds the course document from the root resource.
type Assembler struct {
	reader ContentReader
	logger interfaces.Logger
}

// NewAssembler returns an Assembler reading resource files through reader.
func NewAssembler(reader ContentReader, opts ...Option) *Assembler {
	o := applyOptions(opts)
	return &Assembler{reader: reader, logger: o.logger}
}

// Assemble builds root at depth 0, marks it as the course and attaches the
// optional properties, calendar and enrollment documents. Immediate children
// listed in properties.ignore are hidden.
func (a *Assembler) Assemble(root *interfaces.LearningResource) (*interfaces.LearningObject, []interfaces.Diagnostic) {
	s := newSession(a.reader, a.logger)

	lo := s.build(root, 0)
	lo.Type = interfaces.ResourceTypeCourse
	lo.Route = CourseRoute

	if props, ok := s.yamlMarker(root, resources.PropertiesFile); ok {
		mapping, isMap := props.(map[string]any)
		if isMap {
			lo.Properties = mapping
			hideIgnored(lo, IgnoreList(mapping))
		} else {
			s.report("readYamlFile", resources.FileWithName(root, resources.PropertiesFile),
				fmt.Errorf("course: properties must be a mapping, got %T", props))
		}
	}
	if calendar, ok := s.yamlMarker(root, resources.CalendarFile); ok {
		lo.Calendar = calendar
	}
	if enrollment, ok := s.yamlMarker(root, resources.EnrollmentFile); ok {
		lo.Enrollment = enrollment
	}

	a.logger.Debug("course.assemble.completed",
		"title", lo.Title,
		"children", len(lo.Children),
		"diagnostics", len(s.diagnostics),
	)
	return lo, s.diagnostics
}

// yamlMarker decodes the named YAML file of lr. It reports false when the file
// is absent, unreadable or empty.
func (s *session) yamlMarker(lr *interfaces.LearningResource, name string) (any, bool) {
	file := resources.FileWithName(lr, name)
	if file == "" {
		return nil, false
	}
	value, err := s.reader.ReadYAML(file)
	if err != nil {
		s.report("readYamlFile", file, err)
		return nil, false
	}
	return value, value != nil
}

// IgnoreList reads the ids listed under the "ignore" key of properties. A
// single string is accepted as a one element list.
func IgnoreList(properties map[string]any) []string {
	switch v := properties["ignore"].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item != nil {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	default:
		return nil
	}
}

func hideIgnored(course *interfaces.LearningObject, ignore []string) {
	if len(ignore) == 0 {
		return
	}
	for _, child := range course.Children {
		if slices.Contains(ignore, child.ID) {
			child.Hide = true
		}
	}
}

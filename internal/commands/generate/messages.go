package generatecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-tutors/internal/generator"
)

const generateCourseMessageType = "tutors.course.generate"

// ResultCallback receives the generator result of a run, including failed
// runs that still produced a partial result.
type ResultCallback func(*generator.Result)

// GenerateCourseCommand compiles the course found in CourseDir.
type GenerateCourseCommand struct {
	CourseDir string `json:"course_dir"`
	OutputDir string `json:"output_dir,omitempty"`
	DryRun    bool   `json:"dry_run,omitempty"`
	// RequireCourseFile fails the command when CourseDir has no course.md.
	RequireCourseFile bool           `json:"require_course_file,omitempty"`
	ResultCallback    ResultCallback `json:"-"`
}

// Type implements command.Message.
func (GenerateCourseCommand) Type() string { return generateCourseMessageType }

// Validate ensures a course directory is named and the output directory does
// not coincide with it.
func (m GenerateCourseCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.CourseDir,
			validation.Required.Error("course_dir is required"),
			validation.By(notBlank("course_dir")),
		),
		validation.Field(&m.OutputDir,
			validation.When(strings.TrimSpace(m.OutputDir) != "",
				validation.NotIn(m.CourseDir).Error("output_dir must differ from course_dir"),
			),
		),
	)
}

func notBlank(field string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("tutors.course.generate."+field+"_blank", field+" must not be blank")
		}
		return nil
	}
}

package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// ResourceType tags a Learning Resource with the role its directory plays in
// the course. The set is closed; values outside it are treated as unknown.
type ResourceType string

const (
	ResourceTypeNone       ResourceType = ""
	ResourceTypeUnit       ResourceType = "unit"
	ResourceTypeSide       ResourceType = "side"
	ResourceTypeTalk       ResourceType = "talk"
	ResourceTypeLab        ResourceType = "lab"
	ResourceTypeNote       ResourceType = "note"
	ResourceTypeWeb        ResourceType = "web"
	ResourceTypeGithub     ResourceType = "github"
	ResourceTypePanelNote  ResourceType = "panelnote"
	ResourceTypePanelTalk  ResourceType = "paneltalk"
	ResourceTypeArchive    ResourceType = "archive"
	ResourceTypePanelVideo ResourceType = "panelvideo"
	ResourceTypeTopic      ResourceType = "topic"
	ResourceTypeBook       ResourceType = "book"
	ResourceTypeUnknown    ResourceType = "unknown"
	// ResourceTypeCourse is only ever assigned to the assembled root.
	ResourceTypeCourse ResourceType = "course"
)

// LearningResource is one course directory as found on disk: its direct files,
// its sub-directories and the type inferred from its name.
type LearningResource struct {
	// CourseRoot is the absolute path of the course's top directory.
	CourseRoot string
	// Route is the absolute path of this directory.
	Route string
	// ID is the last segment of Route.
	ID string
	// Files lists the direct (non-recursive) files of the directory in listing order.
	Files []string
	// LRs are the immediate child resources, in listing order.
	LRs  []*LearningResource
	Type ResourceType
}

// VideoIdentifier references a video hosted by a streaming service.
type VideoIdentifier struct {
	Service string `json:"service"`
	ID      string `json:"id"`
}

// VideoIdentifiers collects every id listed in a videoid marker file. VideoID
// is the primary id, i.e. the id of the last entry.
type VideoIdentifiers struct {
	VideoID  string            `json:"videoid"`
	VideoIDs []VideoIdentifier `json:"videoIds"`
}

// LabStep is one page of a multi-step lab.
type LabStep struct {
	Title      string `json:"title"`
	ShortTitle string `json:"shortTitle"`
	ContentMd  string `json:"contentMd"`
	Route      string `json:"route"`
	RoutePath  string `json:"routePath"`
	ID         string `json:"id"`
}

// LearningObject is a node of the compiled course. Children and LabSteps are
// mutually exclusive: lab objects only carry steps, every other object only
// carries children. Both are serialized under the "los" key.
type LearningObject struct {
	ID          string
	Route       string
	RoutePath   string
	Type        ResourceType
	Title       string
	Summary     string
	ContentMd   string
	FrontMatter map[string]any
	Img         string
	ImgPath     string
	Pdf         string
	PdfPath     string
	Zip         string
	ZipPath     string
	Video       string
	VideoIDs    VideoIdentifiers
	Children    []*LearningObject
	LabSteps    []LabStep
	Hide        bool

	// Course level attributes, only set on the assembled root.
	Properties map[string]any
	Calendar   any
	Enrollment any
}

type learningObjectJSON struct {
	Route       string           `json:"route"`
	RoutePath   string           `json:"routePath"`
	Type        ResourceType     `json:"type"`
	Title       string           `json:"title"`
	Summary     string           `json:"summary"`
	ContentMd   string           `json:"contentMd"`
	FrontMatter map[string]any   `json:"frontMatter"`
	ID          string           `json:"id"`
	Img         string           `json:"img"`
	ImgPath     string           `json:"imgPath"`
	Pdf         string           `json:"pdf"`
	PdfPath     string           `json:"pdfPath"`
	Video       string           `json:"video"`
	VideoIDs    VideoIdentifiers `json:"videoids"`
	LOs         any              `json:"los"`
	Hide        bool             `json:"hide"`
	Zip         string           `json:"zip"`
	ZipPath     string           `json:"zipPath"`
	Properties  map[string]any   `json:"properties,omitempty"`
	Calendar    any              `json:"calendar,omitempty"`
	Enrollment  any              `json:"enrollment,omitempty"`
}

// MarshalJSON emits the document shape consumed by the course reader.
func (lo *LearningObject) MarshalJSON() ([]byte, error) {
	var los any
	if lo.LabSteps != nil {
		los = lo.LabSteps
	} else if lo.Children != nil {
		los = lo.Children
	} else {
		los = []*LearningObject{}
	}

	frontMatter := lo.FrontMatter
	if frontMatter == nil {
		frontMatter = map[string]any{}
	}
	videoIDs := lo.VideoIDs
	if videoIDs.VideoIDs == nil {
		videoIDs.VideoIDs = []VideoIdentifier{}
	}

	return encodeJSON(learningObjectJSON{
		Route:       lo.Route,
		RoutePath:   lo.RoutePath,
		Type:        lo.Type,
		Title:       lo.Title,
		Summary:     lo.Summary,
		ContentMd:   lo.ContentMd,
		FrontMatter: frontMatter,
		ID:          lo.ID,
		Img:         lo.Img,
		ImgPath:     lo.ImgPath,
		Pdf:         lo.Pdf,
		PdfPath:     lo.PdfPath,
		Video:       lo.Video,
		VideoIDs:    videoIDs,
		LOs:         los,
		Hide:        lo.Hide,
		Zip:         lo.Zip,
		ZipPath:     lo.ZipPath,
		Properties:  lo.Properties,
		Calendar:    lo.Calendar,
		Enrollment:  lo.Enrollment,
	})
}

// encodeJSON marshals v without escaping HTML characters.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Diagnostic records a recoverable failure: the named operation fell back to
// an empty value instead of aborting the build.
type Diagnostic struct {
	Operation string
	Path      string
	Err       error
}

func (d Diagnostic) Error() string {
	if d.Path == "" {
		return fmt.Sprintf("%s: %v", d.Operation, d.Err)
	}
	return fmt.Sprintf("%s %s: %v", d.Operation, d.Path, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// ResourceDiscoverer turns a course directory into a Learning Resource tree.
type ResourceDiscoverer interface {
	Discover(ctx context.Context, root string) (*LearningResource, error)
}

// CourseSerializer persists an assembled course and returns the written path.
type CourseSerializer interface {
	Write(ctx context.Context, course *LearningObject, outputDir string) (string, error)
}

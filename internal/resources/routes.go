package resources

import (
	"strings"

	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// CourseURL is the placeholder the course reader substitutes with the course host.
const CourseURL = "{{COURSEURL}}"

// Link is an asset reference in both of its forms. Public is resolved by the
// course reader, Path is the slash-normalized location on disk.
type Link struct {
	Public string
	Path   string
}

// Route returns the public route of lr: /<type>/{{COURSEURL}}<relative path>.
func Route(lr *interfaces.LearningResource) string {
	if lr == nil {
		return ""
	}
	return "/" + string(lr.Type) + "/" + CourseURL + relative(lr, lr.Route)
}

// RoutePath returns the resource route as a slash-normalized filesystem path.
func RoutePath(lr *interfaces.LearningResource) string {
	if lr == nil {
		return ""
	}
	return slashes(lr.Route)
}

// AssetLink builds both forms of a link to file, which must live under the
// course root. An empty file yields an empty Link.
func AssetLink(lr *interfaces.LearningResource, file string) Link {
	if file == "" || lr == nil {
		return Link{}
	}
	return Link{
		Public: "https://" + CourseURL + relative(lr, file),
		Path:   slashes(file),
	}
}

// Image links the first image of lr.
func Image(lr *interfaces.LearningResource) Link {
	return AssetLink(lr, FileWithType(lr, ImageTypes...))
}

// Pdf links the first pdf of lr.
func Pdf(lr *interfaces.LearningResource) Link {
	return AssetLink(lr, FileWithType(lr, PdfTypes...))
}

// Archive links the first zip archive of lr.
func Archive(lr *interfaces.LearningResource) Link {
	return AssetLink(lr, FileWithType(lr, ArchiveTypes...))
}

// LabImage links the cover image of a lab: the last image of the "img" child
// whose path contains /img/main.
func LabImage(lr *interfaces.LearningResource) Link {
	img := Child(lr, "img")
	if img == nil {
		return Link{}
	}
	found := ""
	for _, file := range FilesWithType(img, ImageTypes...) {
		if strings.Contains(slashes(file), "/img/main") {
			found = file
		}
	}
	return AssetLink(lr, found)
}

// VideoRoute returns /video/{{COURSEURL}}<relative path>/<id>, or "" when id
// is empty.
func VideoRoute(lr *interfaces.LearningResource, id string) string {
	if lr == nil || id == "" {
		return ""
	}
	return "/video/" + CourseURL + relative(lr, lr.Route) + "/" + id
}

func relative(lr *interfaces.LearningResource, path string) string {
	return slashes(strings.TrimPrefix(path, lr.CourseRoot))
}

func slashes(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

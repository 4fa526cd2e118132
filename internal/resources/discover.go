package resources

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goliatone/go-tutors/internal/logging"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// typePrefixes maps directory name prefixes to resource types, longest first
// so that "panelnote-1" is not taken for a note.
var typePrefixes = []struct {
	prefix string
	kind   interfaces.ResourceType
}{
	{"panelvideo", interfaces.ResourceTypePanelVideo},
	{"panelnote", interfaces.ResourceTypePanelNote},
	{"paneltalk", interfaces.ResourceTypePanelTalk},
	{"archive", interfaces.ResourceTypeArchive},
	{"github", interfaces.ResourceTypeGithub},
	{"topic", interfaces.ResourceTypeTopic},
	{"unit", interfaces.ResourceTypeUnit},
	{"side", interfaces.ResourceTypeSide},
	{"talk", interfaces.ResourceTypeTalk},
	{"note", interfaces.ResourceTypeNote},
	{"book", interfaces.ResourceTypeLab},
	{"web", interfaces.ResourceTypeWeb},
	{"lab", interfaces.ResourceTypeLab},
}

// TypeFromName infers the resource type from a directory base name.
func TypeFromName(name string) interfaces.ResourceType {
	lower := strings.ToLower(name)
	for _, entry := range typePrefixes {
		if strings.HasPrefix(lower, entry.prefix) {
			return entry.kind
		}
	}
	return interfaces.ResourceTypeUnknown
}

// DiscovererConfig configures directory discovery.
type DiscovererConfig struct {
	// BasePath is the absolute directory the filesystem is rooted at.
	BasePath string
	// Exclude lists paths, relative to the course root, that are skipped.
	// Typically the output directory.
	Exclude []string
	Logger  interfaces.Logger
}

// Discoverer builds Learning Resource trees from a course directory.
type Discoverer struct {
	fs       fs.FS
	basePath string
	exclude  []string
	logger   interfaces.Logger
}

var _ interfaces.ResourceDiscoverer = (*Discoverer)(nil)

// NewDiscoverer constructs a Discoverer over filesystem.
func NewDiscoverer(filesystem fs.FS, cfg DiscovererConfig) *Discoverer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	var exclude []string
	for _, path := range cfg.Exclude {
		if path = strings.TrimSpace(path); path != "" {
			exclude = append(exclude, filepath.ToSlash(filepath.Clean(path)))
		}
	}
	return &Discoverer{
		fs:       filesystem,
		basePath: filepath.Clean(cfg.BasePath),
		exclude:  exclude,
		logger:   logger,
	}
}

// NewDirDiscoverer roots a Discoverer at a directory on disk.
func NewDirDiscoverer(basePath string, cfg DiscovererConfig) (*Discoverer, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resources: resolve %s: %w", basePath, err)
	}
	cfg.BasePath = abs
	return NewDiscoverer(os.DirFS(abs), cfg), nil
}

// Discover walks root and returns its resource tree. root must be BasePath or
// a directory beneath it; the returned root resource has type course. Entries
// are listed in name order; hidden and excluded entries are skipped.
func (d *Discoverer) Discover(ctx context.Context, root string) (*interfaces.LearningResource, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	courseRoot := filepath.Clean(root)
	if !filepath.IsAbs(courseRoot) {
		courseRoot = filepath.Join(d.basePath, courseRoot)
	}

	lr, err := d.discover(ctx, courseRoot, courseRoot)
	if err != nil {
		return nil, err
	}
	lr.Type = interfaces.ResourceTypeCourse

	d.logger.Debug("resources.discover.completed",
		"course_root", courseRoot,
		"resources", count(lr),
	)
	return lr, nil
}

func (d *Discoverer) discover(ctx context.Context, courseRoot, dir string) (*interfaces.LearningResource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(d.basePath, dir)
	if err != nil || rel == ".." || strings.HasPrefix(filepath.ToSlash(rel), "../") {
		return nil, fmt.Errorf("resources: %s is outside %s", dir, d.basePath)
	}

	entries, err := fs.ReadDir(d.fs, filepath.ToSlash(rel))
	if err != nil {
		return nil, fmt.Errorf("resources: read dir %s: %w", dir, err)
	}

	name := filepath.Base(dir)
	lr := &interfaces.LearningResource{
		CourseRoot: courseRoot,
		Route:      dir,
		ID:         name,
		Type:       TypeFromName(name),
		Files:      []string{},
		LRs:        []*interfaces.LearningResource{},
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if d.skip(courseRoot, path) {
			continue
		}
		if !entry.IsDir() {
			lr.Files = append(lr.Files, path)
			continue
		}
		child, err := d.discover(ctx, courseRoot, path)
		if err != nil {
			return nil, err
		}
		lr.LRs = append(lr.LRs, child)
	}
	return lr, nil
}

func (d *Discoverer) skip(courseRoot, path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || name == "node_modules" {
		return true
	}
	if len(d.exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(courseRoot, path)
	return err == nil && slices.Contains(d.exclude, filepath.ToSlash(rel))
}

func count(lr *interfaces.LearningResource) int {
	total := 1
	for _, child := range lr.LRs {
		total += count(child)
	}
	return total
}

package output

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-tutors/internal/resources"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// SourceFS gives read access to course files addressed by absolute path.
// markdown.Reader satisfies it.
type SourceFS interface {
	FS() fs.FS
	Rel(path string) (string, error)
}

// AssetCopier mirrors every asset of a resource tree into the output directory.
type AssetCopier struct {
	source SourceFS
	writer artifactWriter
	opts   options
}

// NewAssetCopier builds an AssetCopier reading from source.
func NewAssetCopier(source SourceFS, opts ...Option) *AssetCopier {
	o := applyOptions(opts)
	return &AssetCopier{source: source, writer: newArtifactWriter(o.dryRun), opts: o}
}

// Copy writes each image, pdf and archive of root and its descendants to the
// same path relative to the course root under outputDir. A file that cannot
// be copied is reported as a diagnostic and the copy continues; only a
// cancelled context stops it.
func (c *AssetCopier) Copy(ctx context.Context, root *interfaces.LearningResource, outputDir string) (int, []interfaces.Diagnostic, error) {
	var (
		copied int
		diags  []interfaces.Diagnostic
	)

	var walk func(lr *interfaces.LearningResource) error
	walk = func(lr *interfaces.LearningResource) error {
		for _, file := range resources.FilesWithType(lr, resources.AssetTypes...) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := c.copyFile(ctx, lr.CourseRoot, file, outputDir); err != nil {
				diags = append(diags, interfaces.Diagnostic{Operation: "copyAsset", Path: file, Err: err})
				c.opts.logger.Warn("output.asset.copy_failed", "path", file, "error", err)
				continue
			}
			copied++
		}
		for _, child := range lr.LRs {
			if child == nil {
				continue
			}
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	if root != nil {
		if err := walk(root); err != nil {
			return copied, diags, err
		}
	}
	c.opts.logger.Debug("output.assets.copied", "count", copied, "failed", len(diags))
	return copied, diags, nil
}

func (c *AssetCopier) copyFile(ctx context.Context, courseRoot, file, outputDir string) error {
	rel, err := filepath.Rel(courseRoot, file)
	if err != nil || strings.HasPrefix(filepath.ToSlash(rel), "../") {
		return fmt.Errorf("output: asset %s is outside %s", file, courseRoot)
	}

	src, err := c.source.Rel(file)
	if err != nil {
		return err
	}
	in, err := c.source.FS().Open(src)
	if err != nil {
		return fmt.Errorf("output: open asset %s: %w", file, err)
	}
	defer in.Close()

	return c.writer.WriteFile(ctx, writeFileRequest{
		Path:     filepath.Join(outputDir, rel),
		Content:  in,
		Category: categoryAsset,
	})
}

// Package markdown reads course content files: markdown documents with their
// front matter, single-line marker files and YAML marker documents. Reads go
// through an fs.FS rooted at the course directory so callers can address files
// by the absolute paths recorded on Learning Resources.
package markdown

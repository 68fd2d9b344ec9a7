package source

import (
	"bytes"
	"context"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/dzikrimr/portfolio-web/pkg/errors"
	"github.com/dzikrimr/portfolio-web/pkg/observability"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
)

// Catalog is the on-disk TOML layout:
//
//	[[project]]
//	id = "analytics-dashboard"
//	title = "Analytics Dashboard"
//	images = ["/assets/project-1.jpg"]
//	tags = ["React", "TypeScript"]
type Catalog struct {
	Projects []portfolio.Project `toml:"project"`
}

// File reads a TOML catalog on every call, so edits show up without a
// restart. Put it behind [Cached] to avoid re-reading on each request.
type File struct {
	path string
}

// NewFile returns a source reading the catalog at path.
func NewFile(path string) (*File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	return &File{path: path}, nil
}

// Path returns the catalog path.
func (f *File) Path() string { return f.path }

// Projects parses the catalog file.
func (f *File) Projects(ctx context.Context) ([]portfolio.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	projects, err := ReadCatalog(f.path)
	observability.Source().OnFetch(ctx, "file", len(projects), time.Since(start), err)
	return projects, err
}

// Close does nothing.
func (f *File) Close() error { return nil }

// ReadCatalog loads and prepares the catalog at path.
func ReadCatalog(path string) ([]portfolio.Project, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "read catalog %s", path)
	}
	return DecodeCatalog(bytes.NewReader(data))
}

// DecodeCatalog parses a TOML catalog and prepares it with [Prepare].
func DecodeCatalog(r io.Reader) ([]portfolio.Project, error) {
	var c Catalog
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode catalog")
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown catalog key %q", undec[0].String())
	}
	return Prepare(c.Projects)
}

// EncodeCatalog writes projects in the TOML catalog layout.
func EncodeCatalog(w io.Writer, projects []portfolio.Project) error {
	return toml.NewEncoder(w).Encode(Catalog{Projects: projects})
}

var _ Source = (*File)(nil)

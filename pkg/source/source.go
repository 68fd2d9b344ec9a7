// Package source loads the project catalog shown by the carousel.
//
// A [Source] returns the full, ordered list of projects. Implementations:
//   - [Static]: an in-memory list, the built-in seed by default
//   - [File]: a TOML catalog on disk
//   - sqlite.Store and mongo.Store in the subpackages of the same names
//   - remote.Source: a catalog fetched over HTTP
//   - [Cached]: any of the above behind a [cache.Cache]
//
// Every implementation returns projects sorted by Position and then by ID,
// validated with [portfolio.Project.Validate].
package source

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dzikrimr/portfolio-web/pkg/errors"
	"github.com/dzikrimr/portfolio-web/pkg/observability"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
)

// Source provides the project catalog.
type Source interface {
	// Projects returns the catalog in display order.
	Projects(ctx context.Context) ([]portfolio.Project, error)

	// Close releases resources held by the source.
	Close() error
}

// Writer is implemented by sources that can store a catalog.
type Writer interface {
	// ReplaceProjects atomically replaces the stored catalog.
	ReplaceProjects(ctx context.Context, projects []portfolio.Project) error
}

// Static serves a fixed list of projects.
type Static struct {
	projects []portfolio.Project
}

// NewStatic returns a source over projects. A nil slice serves the built-in
// seed catalog.
func NewStatic(projects []portfolio.Project) *Static {
	if projects == nil {
		projects = portfolio.Seed()
	}
	return &Static{projects: Sort(clone(projects))}
}

// Projects returns a copy of the list.
func (s *Static) Projects(ctx context.Context) ([]portfolio.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	out := clone(s.projects)
	observability.Source().OnFetch(ctx, "static", len(out), time.Since(start), nil)
	return out, nil
}

// Close does nothing.
func (s *Static) Close() error { return nil }

// projectNamespace seeds the name-based UUIDs of projects without an ID.
var projectNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/dzikrimr/portfolio-web/project"))

// StableID derives the ID of a project that has none from its title and its
// index in the catalog. Reading the same catalog twice yields the same IDs,
// so detail links and cache keys survive across requests.
func StableID(title string, index int) string {
	return uuid.NewSHA1(projectNamespace, []byte(strconv.Itoa(index)+"\x00"+title)).String()
}

// Prepare readies a catalog for storage: it assigns a [StableID] to
// projects without an ID, numbers positions by slice order when none are
// set, validates every project and rejects duplicate IDs.
func Prepare(projects []portfolio.Project) ([]portfolio.Project, error) {
	out := clone(projects)
	positioned := false
	for _, p := range out {
		if p.Position != 0 {
			positioned = true
			break
		}
	}
	seen := make(map[string]bool, len(out))
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = StableID(out[i].Title, i)
		}
		if !positioned {
			out[i].Position = i
		}
		if err := out[i].Validate(); err != nil {
			return nil, fmt.Errorf("project %d: %w", i, err)
		}
		if seen[out[i].ID] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate project id %q", out[i].ID)
		}
		seen[out[i].ID] = true
	}
	return Sort(out), nil
}

// Sort orders projects by Position, then ID, in place and returns them.
func Sort(projects []portfolio.Project) []portfolio.Project {
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].Position != projects[j].Position {
			return projects[i].Position < projects[j].Position
		}
		return projects[i].ID < projects[j].ID
	})
	return projects
}

func clone(projects []portfolio.Project) []portfolio.Project {
	if projects == nil {
		return nil
	}
	out := make([]portfolio.Project, len(projects))
	for i, p := range projects {
		p.Images = append([]string(nil), p.Images...)
		p.Tags = append([]string(nil), p.Tags...)
		out[i] = p
	}
	return out
}

var (
	_ Source = (*Static)(nil)
)

func errUnwritable(s Source) error {
	return errors.New(errors.ErrCodeUnsupported, "source %T cannot store projects", s)
}

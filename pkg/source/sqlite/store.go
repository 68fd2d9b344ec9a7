// Package sqlite stores the project catalog in a SQLite database using the
// pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/dzikrimr/portfolio-web/pkg/cache"
	perrors "github.com/dzikrimr/portfolio-web/pkg/errors"
	"github.com/dzikrimr/portfolio-web/pkg/observability"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
	"github.com/dzikrimr/portfolio-web/pkg/source"
	"github.com/dzikrimr/portfolio-web/pkg/source/sqlite/migrations"
)

// Store persists projects in SQLite.
type Store struct {
	sqlDB *sql.DB
	path  string
}

// Open opens the database at path, creating it if needed, and applies the
// embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, perrors.New(perrors.ErrCodeInvalidPath, "storage path is required")
	}
	if err := perrors.ValidatePath(path); err != nil {
		return nil, err
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "ping sqlite db %s", cleanPath)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, path: cleanPath}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Projects returns all projects ordered by position.
func (s *Store) Projects(ctx context.Context) ([]portfolio.Project, error) {
	start := time.Now()
	projects, err := s.projects(ctx)
	observability.Source().OnFetch(ctx, "sqlite", len(projects), time.Since(start), err)
	return projects, err
}

func (s *Store) projects(ctx context.Context) ([]portfolio.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, title, description, link, position FROM projects ORDER BY position, id`)
	if err != nil {
		return nil, classify(err, "list projects")
	}
	defer rows.Close()

	var projects []portfolio.Project
	index := make(map[string]int)
	for rows.Next() {
		var p portfolio.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Link, &p.Position); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		index[p.ID] = len(projects)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "list projects")
	}

	err = s.eachChild(ctx, `SELECT project_id, url FROM project_images ORDER BY project_id, position`,
		func(id, value string) {
			if i, ok := index[id]; ok {
				projects[i].Images = append(projects[i].Images, value)
			}
		})
	if err != nil {
		return nil, err
	}
	err = s.eachChild(ctx, `SELECT project_id, tag FROM project_tags ORDER BY project_id, position`,
		func(id, value string) {
			if i, ok := index[id]; ok {
				projects[i].Tags = append(projects[i].Tags, value)
			}
		})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Project returns one project by ID.
func (s *Store) Project(ctx context.Context, id string) (portfolio.Project, error) {
	projects, err := s.projects(ctx)
	if err != nil {
		return portfolio.Project{}, err
	}
	p, _, ok := portfolio.Find(projects, id)
	if !ok {
		return portfolio.Project{}, perrors.New(perrors.ErrCodeProjectNotFound, "project %q not found", id)
	}
	return p, nil
}

// ReplaceProjects replaces the whole catalog in one transaction. Projects
// are prepared first, so missing IDs get a UUID.
func (s *Store) ReplaceProjects(ctx context.Context, projects []portfolio.Project) error {
	prepared, err := source.Prepare(projects)
	if err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return classify(err, "begin replace")
	}
	defer func() { _ = tx.Rollback() }()

	// project_images and project_tags cascade.
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
		return classify(err, "clear projects")
	}
	now := time.Now().UTC().UnixMilli()
	for _, p := range prepared {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, title, description, link, position, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Title, p.Description, p.Link, p.Position, now, now,
		); err != nil {
			if isUniqueViolation(err) {
				return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "duplicate project id %q", p.ID)
			}
			return classify(err, "insert project "+p.ID)
		}
		for i, url := range p.Images {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO project_images (project_id, position, url) VALUES (?, ?, ?)`,
				p.ID, i, url,
			); err != nil {
				return classify(err, "insert image for "+p.ID)
			}
		}
		for i, tag := range p.Tags {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO project_tags (project_id, position, tag) VALUES (?, ?, ?)`,
				p.ID, i, tag,
			); err != nil {
				return classify(err, "insert tag for "+p.ID)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return classify(err, "commit replace")
	}
	return nil
}

// Count returns the number of stored projects.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, classify(err, "count projects")
	}
	return n, nil
}

func (s *Store) eachChild(ctx context.Context, query string, fn func(id, value string)) error {
	rows, err := s.sqlDB.QueryContext(ctx, query)
	if err != nil {
		return classify(err, "list children")
	}
	defer rows.Close()
	for rows.Next() {
		var id, value string
		if err := rows.Scan(&id, &value); err != nil {
			return fmt.Errorf("scan child row: %w", err)
		}
		fn(id, value)
	}
	return rows.Err()
}

// classify wraps err as SOURCE_UNAVAILABLE, marking busy and locked
// databases retryable.
func classify(err error, op string) error {
	wrapped := perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "%s", op)
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED:
			return cache.Retryable(wrapped)
		}
	}
	return wrapped
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var (
	_ source.Source = (*Store)(nil)
	_ source.Writer = (*Store)(nil)
)

// Package mongo stores the project catalog in a MongoDB collection.
//
// Each project is one document keyed by its ID:
//
//	{ "_id": "analytics-dashboard", "title": "...", "images": [...],
//	  "tags": [...], "link": "#", "position": 0 }
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dzikrimr/portfolio-web/pkg/cache"
	perrors "github.com/dzikrimr/portfolio-web/pkg/errors"
	"github.com/dzikrimr/portfolio-web/pkg/observability"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
	"github.com/dzikrimr/portfolio-web/pkg/source"
)

// DefaultCollection is the collection projects are stored in.
const DefaultCollection = "projects"

// Options configures a Store.
type Options struct {
	URI        string
	Database   string
	Collection string

	// ConnectTimeout bounds the initial ping. Zero means 10 seconds.
	ConnectTimeout time.Duration
}

// Store reads and writes projects in MongoDB.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open connects to MongoDB and pings the server.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.URI == "" {
		return nil, perrors.New(perrors.ErrCodeInvalidSource, "mongo uri is required")
	}
	if opts.Database == "" {
		return nil, perrors.New(perrors.ErrCodeInvalidSource, "mongo database is required")
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(opts.URI).
		SetServerSelectionTimeout(opts.ConnectTimeout))
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidSource, err, "connect mongo")
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()
	err = cache.RetryWithBackoff(pingCtx, func() error {
		return classify(client.Ping(pingCtx, nil), "ping mongo")
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Store{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Projects returns all projects ordered by position.
func (s *Store) Projects(ctx context.Context) ([]portfolio.Project, error) {
	start := time.Now()
	projects, err := s.projects(ctx)
	observability.Source().OnFetch(ctx, "mongo", len(projects), time.Since(start), err)
	return projects, err
}

func (s *Store) projects(ctx context.Context) ([]portfolio.Project, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(sortOrder()))
	if err != nil {
		return nil, classify(err, "find projects")
	}
	var projects []portfolio.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, classify(err, "decode projects")
	}
	return projects, nil
}

// Project returns one project by ID.
func (s *Store) Project(ctx context.Context, id string) (portfolio.Project, error) {
	var p portfolio.Project
	err := s.coll.FindOne(ctx, byID(id)).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return portfolio.Project{}, perrors.New(perrors.ErrCodeProjectNotFound, "project %q not found", id)
	}
	if err != nil {
		return portfolio.Project{}, classify(err, "find project "+id)
	}
	return p, nil
}

// ReplaceProjects deletes every stored project and inserts the prepared
// catalog. Standalone servers have no multi-document transactions, so a
// reader may briefly observe an empty collection.
func (s *Store) ReplaceProjects(ctx context.Context, projects []portfolio.Project) error {
	prepared, err := source.Prepare(projects)
	if err != nil {
		return err
	}
	if _, err := s.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return classify(err, "clear projects")
	}
	docs := documents(prepared)
	if len(docs) == 0 {
		return nil
	}
	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "duplicate project id")
		}
		return classify(err, "insert projects")
	}
	return nil
}

func sortOrder() bson.D {
	return bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}}
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func documents(projects []portfolio.Project) []any {
	docs := make([]any, len(projects))
	for i, p := range projects {
		docs[i] = p
	}
	return docs
}

// classify wraps err as SOURCE_UNAVAILABLE, marking network failures and
// timeouts retryable.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	wrapped := perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "%s", op)
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return cache.Retryable(fmt.Errorf("%w: %w", cache.ErrNetwork, wrapped))
	}
	return wrapped
}

var (
	_ source.Source = (*Store)(nil)
	_ source.Writer = (*Store)(nil)
)

package mongo

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dzikrimr/portfolio-web/pkg/cache"
	perrors "github.com/dzikrimr/portfolio-web/pkg/errors"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
)

func TestOpenValidatesOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no uri", Options{Database: "portfolio"}},
		{"no database", Options{URI: "mongodb://localhost:27017"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), tt.opts)
			if !perrors.Is(err, perrors.ErrCodeInvalidSource) {
				t.Errorf("Open() error = %v, want INVALID_SOURCE", err)
			}
		})
	}
}

func TestProjectDocumentMapping(t *testing.T) {
	p := portfolio.Seed()[0]
	data, err := bson.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw bson.M
	if err := bson.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw["_id"] != p.ID {
		t.Errorf("_id = %v, want %q", raw["_id"], p.ID)
	}
	for _, key := range []string{"title", "description", "images", "tags", "link", "position"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("document missing %q", key)
		}
	}

	var back portfolio.Project
	if err := bson.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != p.ID || back.Title != p.Title || len(back.Tags) != len(p.Tags) {
		t.Errorf("decoded %+v, want %+v", back, p)
	}
}

func TestEmptyListsAreOmitted(t *testing.T) {
	data, err := bson.Marshal(portfolio.Project{ID: "p", Title: "P"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw bson.M
	if err := bson.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"images", "tags", "link"} {
		if _, ok := raw[key]; ok {
			t.Errorf("empty %q should be omitted", key)
		}
	}
}

func TestQueries(t *testing.T) {
	order := sortOrder()
	if len(order) != 2 || order[0].Key != "position" || order[1].Key != "_id" {
		t.Errorf("sortOrder() = %v", order)
	}
	if q := byID("x"); len(q) != 1 || q[0].Key != "_id" || q[0].Value != "x" {
		t.Errorf("byID() = %v", q)
	}
	docs := documents(portfolio.Seed())
	if len(docs) != 3 {
		t.Fatalf("len(documents) = %d", len(docs))
	}
	if _, ok := docs[0].(portfolio.Project); !ok {
		t.Errorf("document type = %T", docs[0])
	}
}

func TestClassify(t *testing.T) {
	if classify(nil, "op") != nil {
		t.Error("nil should stay nil")
	}
	err := classify(errors.New("bad query"), "find")
	if !perrors.Is(err, perrors.ErrCodeSourceUnavailable) {
		t.Errorf("classify() = %v, want SOURCE_UNAVAILABLE", err)
	}
	if cache.IsRetryable(err) {
		t.Error("plain errors should not be retryable")
	}
	if err := classify(context.DeadlineExceeded, "find"); !cache.IsRetryable(err) {
		t.Errorf("timeouts should be retryable: %v", err)
	}
}

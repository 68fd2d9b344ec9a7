package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dzikrimr/portfolio-web/pkg/errors"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
	"github.com/dzikrimr/portfolio-web/pkg/source"
)

func TestSpinnerDrawsAndClears(t *testing.T) {
	var out bytes.Buffer
	s := newSpinner(context.Background(), &out, "Loading projects...")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Loading projects...") {
		t.Errorf("spinner output %q lacks the message", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("spinner did not clear its line: %q", got)
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after a plain Stop")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var out bytes.Buffer
	s := newSpinner(context.Background(), &out, "Writing projects...")
	s.Start()
	s.Stop()
	s.Stop()
	s.StopWithSuccess("Seeded 3 projects")
}

func TestSpinnerStopsWithParent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	s := newSpinner(ctx, &out, "Loading projects...")
	s.Start()
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() blocked after the parent context ended")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after the parent context ended")
	}
}

type brokenSource struct{ err error }

func (b brokenSource) Projects(context.Context) ([]portfolio.Project, error) { return nil, b.err }
func (brokenSource) Close() error                                          { return nil }

func TestLoadCatalog(t *testing.T) {
	var logs, out bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&logs, log.InfoLevel))

	projects, err := loadCatalog(ctx, source.NewStatic(nil), &out)
	if err != nil {
		t.Fatalf("loadCatalog() error: %v", err)
	}
	if len(projects) != len(portfolio.Seed()) {
		t.Errorf("loadCatalog() = %d projects, want %d", len(projects), len(portfolio.Seed()))
	}
	if !strings.Contains(logs.String(), "Loaded 3 projects") {
		t.Errorf("log = %q, want the project count", logs.String())
	}

	logs.Reset()
	_, err = loadCatalog(ctx, brokenSource{err: errors.New(errors.ErrCodeSourceUnavailable, "db down")}, &out)
	if !errors.Is(err, errors.ErrCodeSourceUnavailable) {
		t.Errorf("loadCatalog() error = %v, want SOURCE_UNAVAILABLE", err)
	}
	if strings.Contains(logs.String(), "Loaded") {
		t.Error("failed load logged a project count")
	}
}

// Package remote reads a project catalog over HTTP.
//
// The catalog may be the TOML layout of [source.Catalog] or a JSON array of
// projects; the Content-Type header (or a .json URL) selects JSON. Transient
// failures (connection errors, 5xx responses) are retried with backoff.
package remote

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/dzikrimr/portfolio-web/pkg/buildinfo"
	"github.com/dzikrimr/portfolio-web/pkg/cache"
	perrors "github.com/dzikrimr/portfolio-web/pkg/errors"
	"github.com/dzikrimr/portfolio-web/pkg/observability"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
	"github.com/dzikrimr/portfolio-web/pkg/source"
)

const (
	httpTimeout = 10 * time.Second

	// maxCatalogSize bounds the response body.
	maxCatalogSize = 4 << 20
)

// Source fetches the catalog from a URL on every call. Put it behind
// [source.Cached] to avoid a request per page view.
type Source struct {
	url     string
	http    *http.Client
	headers map[string]string
}

// Option configures a Source.
type Option func(*Source)

// WithHTTPClient replaces the default client, which times out after ten
// seconds.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		if c != nil {
			s.http = c
		}
	}
}

// WithHeader adds a header to every request, for example an Authorization
// header for a private catalog.
func WithHeader(key, value string) Option {
	return func(s *Source) { s.headers[key] = value }
}

// New returns a source for the catalog at url.
func New(url string, opts ...Option) (*Source, error) {
	if err := perrors.ValidateURL(url); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidSource, err, "catalog url")
	}
	s := &Source{
		url:  url,
		http: &http.Client{Timeout: httpTimeout},
		headers: map[string]string{
			"User-Agent": "portfolio/" + buildinfo.Version,
			"Accept":     "application/toml, application/json;q=0.9, text/plain;q=0.8",
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// URL returns the catalog URL.
func (s *Source) URL() string { return s.url }

// Projects downloads and decodes the catalog.
func (s *Source) Projects(ctx context.Context) ([]portfolio.Project, error) {
	start := time.Now()
	var projects []portfolio.Project
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		projects, err = s.fetch(ctx)
		return err
	})
	observability.Source().OnFetch(ctx, "url", len(projects), time.Since(start), err)
	if err != nil {
		return nil, classify(err, s.url)
	}
	return projects, nil
}

// Close does nothing.
func (s *Source) Close() error { return nil }

func (s *Source) fetch(ctx context.Context) ([]portfolio.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	body := io.LimitReader(resp.Body, maxCatalogSize)
	if isJSON(resp.Header.Get("Content-Type"), s.url) {
		return decodeJSON(body)
	}
	return source.DecodeCatalog(body)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return cache.ErrNotFound
	case code == http.StatusTooManyRequests, code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", cache.ErrNetwork, code)
	}
}

func isJSON(contentType, url string) bool {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		if mt == "application/json" || strings.HasSuffix(mt, "+json") {
			return true
		}
	}
	return strings.HasSuffix(strings.ToLower(url), ".json")
}

func decodeJSON(r io.Reader) ([]portfolio.Project, error) {
	var projects []portfolio.Project
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&projects); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode catalog")
	}
	return source.Prepare(projects)
}

// classify maps transport failures to structured errors. Errors that already
// carry a code pass through. Retries are spent by then, so the retryable
// marker is dropped to keep callers from retrying again.
func classify(err error, url string) error {
	if perrors.GetCode(err) != "" {
		return err
	}
	var re *cache.RetryableError
	if stderrors.As(err, &re) {
		err = re.Err
	}
	switch {
	case stderrors.Is(err, cache.ErrNotFound):
		return perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "catalog %s not found upstream", url)
	case stderrors.Is(err, context.DeadlineExceeded):
		return perrors.Wrap(perrors.ErrCodeTimeout, err, "fetch catalog %s", url)
	}
	return perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "fetch catalog %s", url)
}

var _ source.Source = (*Source)(nil)

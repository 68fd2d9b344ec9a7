// Package server serves the portfolio over HTTP.
//
// The server is stateless: the carousel focus travels in the query string
// and every request rebuilds a controller from it, applies at most one
// action and renders or redirects. Routes:
//
//	GET /                          redirect to /projects
//	GET /projects?focus=k          carousel page
//	GET /projects/nav              one previous/next step, 303
//	GET /projects/jump             indicator jump, 303
//	GET /projects/gesture          drag recognition, 303
//	GET /projects/{id}             detail view with image gallery
//	GET /api/carousel?focus=k      computed carousel as JSON
//	GET /healthz                   liveness
//	GET /metrics                   Prometheus exposition
package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dzikrimr/portfolio-web/pkg/cache"
	"github.com/dzikrimr/portfolio-web/pkg/carousel"
	"github.com/dzikrimr/portfolio-web/pkg/render"
	"github.com/dzikrimr/portfolio-web/pkg/source"
)

//go:embed static
var staticFS embed.FS

// Options configures a Server.
type Options struct {
	// Source provides the project catalog. Required.
	Source source.Source

	// Cache stores rendered pages. Nil disables page caching.
	Cache    cache.Cache
	Keyer    cache.Keyer
	CacheTTL time.Duration

	Policy    carousel.Policy
	Threshold float64
	Site      render.Site

	// AssetsDir, when set, is served under /assets/ for project images.
	AssetsDir string

	// Gatherer backs /metrics. Nil means the default Prometheus registry.
	Gatherer prometheus.Gatherer

	Logger *log.Logger
}

// Server is the portfolio HTTP server.
type Server struct {
	opts   Options
	router chi.Router
	logger *log.Logger
}

// New builds a server and its routes.
func New(opts Options) (*Server, error) {
	if opts.Source == nil {
		return nil, errors.New("server: source is required")
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Threshold <= 0 {
		opts.Threshold = carousel.DefaultThreshold
	}
	if opts.Site == (render.Site{}) {
		opts.Site = render.DefaultSite()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{opts: opts, logger: opts.Logger}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.trace)
	r.Use(s.instrument)
	r.Use(s.recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, render.ProjectsPath, http.StatusFound)
	})
	r.Route(render.ProjectsPath, func(r chi.Router) {
		r.Get("/", s.handleProjects)
		r.Get("/nav", s.handleNav)
		r.Get("/jump", s.handleJump)
		r.Get("/gesture", s.handleGesture)
		r.Get("/{id}", s.handleDetail)
	})
	r.Get("/api/carousel", s.handleAPICarousel)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	if s.opts.AssetsDir != "" {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(s.opts.AssetsDir))))
	}
	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully
// within shutdownTimeout.
func (s *Server) Serve(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

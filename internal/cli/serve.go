package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dzikrimr/portfolio-web/pkg/cache"
	"github.com/dzikrimr/portfolio-web/pkg/config"
	"github.com/dzikrimr/portfolio-web/pkg/observability"
	"github.com/dzikrimr/portfolio-web/pkg/render"
	"github.com/dzikrimr/portfolio-web/pkg/server"
	"github.com/dzikrimr/portfolio-web/pkg/source"
)

// serveOpts holds the command-line overrides for the serve command.
type serveOpts struct {
	addr    string // listen address, overrides server.addr
	assets  string // directory served under /assets/
	noCache bool   // disable the catalog and page cache
}

// serveCommand creates the serve command that runs the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		Long: `Serve the portfolio carousel over HTTP.

The server keeps no carousel state: the focused card travels in the URL and
navigation links redirect back to /projects?focus=N. Metrics are exposed on
/metrics and traces are exported when server.otel_endpoint is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if opts.addr != "" {
				cfg.Server.Addr = opts.addr
			}
			if opts.noCache {
				cfg.Cache.Disabled = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&opts.assets, "assets", "", "directory served under /assets/ for project images")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the observability hooks, the source and the page cache
// into a server and runs it until ctx is cancelled.
func runServe(ctx context.Context, cfg config.Config, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	shutdownTracing, err := observability.SetupTracing(ctx, appName, cfg.Server.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("flush traces", "err", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	observability.SetAll(observability.Multi{
		observability.NewPrometheusHooks(reg),
		observability.TracingHooks{},
	})
	defer observability.Reset()

	pageCache, err := openCache(ctx, cfg, false)
	if err != nil {
		return err
	}
	if pageCache != nil {
		defer pageCache.Close()
	}

	src, err := openSource(ctx, cfg, pageCache)
	if err != nil {
		return err
	}
	defer src.Close()

	srv, err := server.New(serverOptions(ctx, cfg, src, pageCache, reg, opts.assets))
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(gctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout.Duration)
	})
	g.Go(func() error {
		// Warm the catalog so the first request does not pay for it. A
		// failure here is not fatal; requests will retry.
		prog := newProgress(logger)
		projects, err := src.Projects(gctx)
		if err != nil {
			logger.Warn("catalog unavailable", "source", cfg.Source.Kind, "err", err)
			return nil
		}
		prog.done(formatCount(len(projects), "project") + " loaded from " + cfg.Source.Kind)
		return nil
	})
	return g.Wait()
}

// serverOptions maps cfg onto the server. Pages are keyed under the site
// scope and the server logs through the command's logger.
func serverOptions(ctx context.Context, cfg config.Config, src source.Source, pageCache cache.Cache, reg *prometheus.Registry, assets string) server.Options {
	return server.Options{
		Source:    src,
		Cache:     pageCache,
		Keyer:     cache.NewScopedKeyer(cache.NewDefaultKeyer(), siteScope(cfg)),
		CacheTTL:  cfg.Cache.TTL.Duration,
		Policy:    cfg.Policy(),
		Threshold: cfg.Carousel.Threshold,
		Site: render.Site{
			Title:    cfg.Site.Title,
			Subtitle: cfg.Site.Subtitle,
			Owner:    cfg.Site.Owner,
		},
		AssetsDir: assets,
		Gatherer:  reg,
		Logger:    loggerFromContext(ctx),
	}
}

// siteScope prefixes page keys with the site text, which pages embed but
// page keys do not cover.
func siteScope(cfg config.Config) string {
	site := cfg.Site.Title + "\x00" + cfg.Site.Subtitle + "\x00" + cfg.Site.Owner
	return "site:" + cache.ShortHash([]byte(site), 12) + ":"
}

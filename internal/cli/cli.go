package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dzikrimr/portfolio-web/pkg/buildinfo"
	"github.com/dzikrimr/portfolio-web/pkg/cache"
	"github.com/dzikrimr/portfolio-web/pkg/config"
	"github.com/dzikrimr/portfolio-web/pkg/errors"
	"github.com/dzikrimr/portfolio-web/pkg/source"
	"github.com/dzikrimr/portfolio-web/pkg/source/mongo"
	"github.com/dzikrimr/portfolio-web/pkg/source/remote"
	"github.com/dzikrimr/portfolio-web/pkg/source/sqlite"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "portfolio"

	// configFile is the file looked up in the config directory when
	// --config is not given.
	configFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Portfolio serves a project carousel on the web and in the terminal",
		Long:         `Portfolio renders a personal project showcase as a circular 3D carousel. It serves the carousel over HTTP, browses it in the terminal and manages the project catalog in TOML, SQLite or MongoDB.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/portfolio/config.toml)")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.seedCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig loads the file given with --config, or the default config file
// when it exists, then applies the environment and validates.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		if p, err := defaultConfigPath(); err == nil {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return cfg, nil
}

// =============================================================================
// Sources & Caches
// =============================================================================

// openCache returns the cache for cfg. Redis is used when an address is
// configured; otherwise the CLI caches on disk and the server (local=false)
// gets no cache at all.
func openCache(ctx context.Context, cfg config.Config, local bool) (cache.Cache, error) {
	switch {
	case cfg.Cache.Disabled:
		return cache.NewNullCache(), nil
	case cfg.Cache.RedisAddr != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:   cfg.Cache.RedisAddr,
			Prefix: cfg.Cache.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	case local:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
	return nil, nil
}

// openStore opens the configured backend without caching.
func openStore(ctx context.Context, cfg config.Config) (source.Source, error) {
	switch cfg.Source.Kind {
	case config.SourceStatic:
		return source.NewStatic(nil), nil
	case config.SourceFile:
		f, err := source.NewFile(cfg.Source.Path)
		if err != nil {
			return nil, err
		}
		return f, nil
	case config.SourceSQLite:
		s, err := sqlite.Open(ctx, cfg.Source.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.SourceURL:
		s, err := remote.New(cfg.Source.URL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.SourceMongo:
		s, err := mongo.Open(ctx, mongo.Options{
			URI:      cfg.Source.MongoURI,
			Database: cfg.Source.Database,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidSource, "unknown source kind %q", cfg.Source.Kind)
}

// openSource opens the configured backend and, unless it is the built-in
// catalog or c is nil, puts the catalog cache in front of it.
func openSource(ctx context.Context, cfg config.Config, c cache.Cache) (source.Source, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if c == nil || cfg.Source.Kind == config.SourceStatic {
		return store, nil
	}
	return source.NewCached(store, c, catalogKey(cfg), cfg.Cache.TTL.Duration,
		source.WithLogger(loggerFromContext(ctx))), nil
}

// catalogKey is the cache key of the configured source's catalog.
func catalogKey(cfg config.Config) string {
	return cache.NewDefaultKeyer().ProjectsKey(cfg.Source.Kind, cfg.Location())
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/portfolio/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// defaultConfigPath returns ~/.config/portfolio/config.toml, honoring
// XDG_CONFIG_HOME.
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, configFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, configFile), nil
}

// Package config loads portfolio settings.
//
// Settings are resolved in three layers, later layers winning:
//
//  1. [Default] values
//  2. A TOML file (see [Load])
//  3. Environment variables prefixed with PORTFOLIO_
//
// Command-line flags are applied on top by the CLI.
//
// Example config.toml:
//
//	[server]
//	addr = ":8080"
//
//	[source]
//	kind = "sqlite"
//	path = "portfolio.db"
//
//	[cache]
//	redis_addr = "localhost:6379"
//	ttl = "10m"
//
//	[site]
//	title = "Portfolio"
//	subtitle = "SELECTED PROJECTS"
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/dzikrimr/portfolio-web/pkg/carousel"
	"github.com/dzikrimr/portfolio-web/pkg/errors"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PORTFOLIO_"

// Source kinds.
const (
	SourceStatic = "static"
	SourceFile   = "file"
	SourceSQLite = "sqlite"
	SourceMongo  = "mongo"
	SourceURL    = "url"
)

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server" envPrefix:"SERVER_"`
	Source   SourceConfig   `toml:"source" envPrefix:"SOURCE_"`
	Cache    CacheConfig    `toml:"cache" envPrefix:"CACHE_"`
	Carousel CarouselConfig `toml:"carousel" envPrefix:"CAROUSEL_"`
	Site     SiteConfig     `toml:"site" envPrefix:"SITE_"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string   `toml:"addr" env:"ADDR"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	OTelEndpoint    string   `toml:"otel_endpoint" env:"OTEL_ENDPOINT"`
}

// SourceConfig selects where projects come from.
type SourceConfig struct {
	Kind     string `toml:"kind" env:"KIND"`
	Path     string `toml:"path" env:"PATH"`
	URL      string `toml:"url" env:"URL"`
	MongoURI string `toml:"mongo_uri" env:"MONGO_URI"`
	Database string `toml:"database" env:"DATABASE"`
}

// CacheConfig configures the catalog and page cache. An empty RedisAddr
// keeps the cache in process (file cache for the CLI, none for the server).
type CacheConfig struct {
	RedisAddr string   `toml:"redis_addr" env:"REDIS_ADDR"`
	Prefix    string   `toml:"prefix" env:"PREFIX"`
	TTL       Duration `toml:"ttl" env:"TTL"`
	Disabled  bool     `toml:"disabled" env:"DISABLED"`
}

// CarouselConfig tunes the carousel geometry and gestures.
type CarouselConfig struct {
	Spacing   float64 `toml:"spacing" env:"SPACING"`
	Threshold float64 `toml:"threshold" env:"THRESHOLD"`
}

// SiteConfig holds the text shown around the carousel.
type SiteConfig struct {
	Title    string `toml:"title" env:"TITLE"`
	Subtitle string `toml:"subtitle" env:"SUBTITLE"`
	Owner    string `toml:"owner" env:"OWNER"`
}

// Duration is a time.Duration that decodes from strings like "10m" in both
// TOML and environment variables.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Source: SourceConfig{
			Kind:     SourceStatic,
			Database: "portfolio",
		},
		Cache: CacheConfig{
			Prefix: "portfolio:",
			TTL:    Duration{10 * time.Minute},
		},
		Carousel: CarouselConfig{
			Spacing:   carousel.DefaultSpacing,
			Threshold: carousel.DefaultThreshold,
		},
		Site: SiteConfig{
			Title:    "Portfolio",
			Subtitle: "SELECTED PROJECTS",
		},
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.LoadEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile decodes the TOML file at path over c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return fmt.Errorf("stat config: %w", err)
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undec[0].String(), path)
	}
	return nil
}

// LoadEnv applies PORTFOLIO_* environment variables over c.
func (c *Config) LoadEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr is required")
	}
	switch c.Source.Kind {
	case SourceStatic:
	case SourceFile, SourceSQLite:
		if err := errors.ValidatePath(c.Source.Path); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSource, err, "source %s needs a path", c.Source.Kind)
		}
	case SourceURL:
		if err := errors.ValidateURL(c.Source.URL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSource, err, "source url needs an http(s) url")
		}
	case SourceMongo:
		if c.Source.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidSource, "source mongo needs mongo_uri")
		}
		if c.Source.Database == "" {
			return errors.New(errors.ErrCodeInvalidSource, "source mongo needs database")
		}
	default:
		return errors.New(errors.ErrCodeInvalidSource, "unknown source kind %q", c.Source.Kind)
	}
	if c.Carousel.Spacing <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "carousel.spacing must be positive")
	}
	if c.Carousel.Threshold <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "carousel.threshold must be positive")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	return nil
}

// Policy returns the carousel visual policy for the configured spacing.
func (c Config) Policy() carousel.Policy {
	p := carousel.DefaultPolicy()
	p.Spacing = c.Carousel.Spacing
	return p
}

// Location identifies the configured source for cache keys and logs.
func (c Config) Location() string {
	switch c.Source.Kind {
	case SourceMongo:
		return c.Source.Database
	case SourceURL:
		return c.Source.URL
	case SourceStatic:
		return "seed"
	default:
		return c.Source.Path
	}
}

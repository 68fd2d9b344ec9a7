package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dzikrimr/portfolio-web/pkg/cache"
	"github.com/dzikrimr/portfolio-web/pkg/config"
	"github.com/dzikrimr/portfolio-web/pkg/errors"
	"github.com/dzikrimr/portfolio-web/pkg/source"
)

func TestRootCommand(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	want := []string{"serve", "browse", "render", "seed", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(&bytes.Buffer{}, LogInfo)

	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() without file error: %v", err)
	}
	if cfg.Source.Kind != config.SourceStatic {
		t.Errorf("Source.Kind = %q, want static", cfg.Source.Kind)
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[server]\naddr = \":9090\"\n\n[site]\ntitle = \"Work\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c.configPath = path
	t.Setenv("PORTFOLIO_SITE_TITLE", "Selected Work")

	cfg, err = c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Site.Title != "Selected Work" {
		t.Errorf("Site.Title = %q, env should override the file", cfg.Site.Title)
	}
}

func TestLoadConfigDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	data := "[carousel]\nspacing = 320.0\n"
	if err := os.WriteFile(filepath.Join(dir, appName, configFile), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := New(&bytes.Buffer{}, LogInfo).loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Carousel.Spacing != 320 {
		t.Errorf("Carousel.Spacing = %v, want 320", cfg.Carousel.Spacing)
	}
}

func TestOpenSource(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	c, err := openCache(ctx, cfg, true)
	if err != nil {
		t.Fatalf("openCache() error: %v", err)
	}
	defer c.Close()

	src, err := openSource(ctx, cfg, c)
	if err != nil {
		t.Fatalf("openSource(static) error: %v", err)
	}
	if _, ok := src.(*source.Static); !ok {
		t.Errorf("static source should not be cached, got %T", src)
	}

	cfg.Source.Kind = config.SourceFile
	cfg.Source.Path = filepath.Join(t.TempDir(), "projects.toml")
	src, err = openSource(ctx, cfg, c)
	if err != nil {
		t.Fatalf("openSource(file) error: %v", err)
	}
	if _, ok := src.(*source.Cached); !ok {
		t.Errorf("file source should be cached, got %T", src)
	}

	cfg.Source.Kind = "ftp"
	if _, err := openSource(ctx, cfg, c); !errors.Is(err, errors.ErrCodeInvalidSource) {
		t.Errorf("unknown kind: got %v, want INVALID_SOURCE", err)
	}
}

func TestOpenCacheServer(t *testing.T) {
	cfg := testConfig(t)
	c, err := openCache(context.Background(), cfg, false)
	if err != nil || c != nil {
		t.Errorf("server without redis: got %v, %v; want no cache", c, err)
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 projects"},
		{1, "1 project"},
		{3, "3 projects"},
	}
	for _, tt := range tests {
		if got := formatCount(tt.n, "project"); got != tt.want {
			t.Errorf("formatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestSiteScope(t *testing.T) {
	a := config.Default()
	b := config.Default()
	b.Site.Title = "Other"
	if siteScope(a) == siteScope(b) {
		t.Error("different site text should scope page keys differently")
	}
	if siteScope(a) != siteScope(config.Default()) {
		t.Error("siteScope should be deterministic")
	}
}

func TestRunCacheClear(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	ctx := context.Background()
	cfg := config.Default()
	other := cfg
	other.Site.Title = "Another site"

	cc, err := openCache(ctx, cfg, true)
	if err != nil {
		t.Fatalf("openCache() error: %v", err)
	}
	own := cache.NewScopedKeyer(cache.NewDefaultKeyer(), siteScope(cfg))
	foreign := cache.NewScopedKeyer(cache.NewDefaultKeyer(), siteScope(other))
	foreignKey := foreign.PageKey("h", cache.PageKeyOpts{Focus: 0, Format: "html"})
	for _, k := range []string{
		catalogKey(cfg),
		own.PageKey("h", cache.PageKeyOpts{Focus: 0, Format: "html"}),
		own.DetailKey("h", "creative-agency", 0),
		foreignKey,
	} {
		if err := cc.Set(ctx, k, []byte("v"), 0); err != nil {
			t.Fatalf("Set(%q) error: %v", k, err)
		}
	}

	res, err := runCacheClear(ctx, cfg, false)
	if err != nil {
		t.Fatalf("runCacheClear() error: %v", err)
	}
	if !res.catalog || res.entries != 2 {
		t.Errorf("runCacheClear() = %+v, want catalog dropped and 2 pages", res)
	}
	if _, hit, _ := cc.Get(ctx, catalogKey(cfg)); hit {
		t.Error("catalog still cached")
	}
	if _, hit, _ := cc.Get(ctx, foreignKey); !hit {
		t.Error("another site's page was cleared")
	}

	res, err = runCacheClear(ctx, cfg, true)
	if err != nil || res.entries != 1 {
		t.Errorf("runCacheClear(all) = %+v, %v, want 1 entry", res, err)
	}
}

func TestRunCacheClearDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Disabled = true
	res, err := runCacheClear(context.Background(), cfg, false)
	if err != nil {
		t.Fatalf("runCacheClear() error: %v", err)
	}
	if res.backend != "disabled" || res.catalog || res.entries != 0 {
		t.Errorf("runCacheClear() = %+v", res)
	}
}

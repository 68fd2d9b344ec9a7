package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dzikrimr/portfolio-web/pkg/cache"
	"github.com/dzikrimr/portfolio-web/pkg/config"
	"github.com/dzikrimr/portfolio-web/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the catalog and page cache",
		Long: `Manage the catalog and page cache. With cache.redis_addr set the commands act
on Redis, the cache shared by servers; otherwise on the local file cache
used by render and browse.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// clearResult reports what a cache clear removed.
type clearResult struct {
	backend string
	catalog bool // catalog entry of the configured source was present
	entries int  // rendered pages, or every entry with --all
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop the cached catalog and rendered pages",
		Long: `Drop the cached catalog of the configured source and the pages rendered for
the configured site, so the next request reloads the catalog. Pages of other
sites sharing the cache are kept unless --all is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			res, err := runCacheClear(cmd.Context(), cfg, all)
			if err != nil {
				return err
			}
			if all {
				printSuccess("Cleared %s", formatCount(res.entries, "key"))
			} else {
				if res.catalog {
					printSuccess("Dropped cached catalog for %s source", cfg.Source.Kind)
				} else {
					printInfo("No cached catalog for %s source", cfg.Source.Kind)
				}
				printSuccess("Cleared %s", formatCount(res.entries, "page"))
			}
			printDetail("Backend: %s", res.backend)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "clear every entry in the cache, not only this site's")
	return cmd
}

// runCacheClear clears the cache cfg selects. Without all it drops the
// catalog key of the configured source and the pages under the site scope.
func runCacheClear(ctx context.Context, cfg config.Config, all bool) (clearResult, error) {
	cc, err := openCache(ctx, cfg, true)
	if err != nil {
		return clearResult{}, err
	}
	defer cc.Close()

	res := clearResult{backend: cacheBackend(cfg)}
	cl, ok := cc.(cache.Clearer)
	if !ok {
		return res, errors.New(errors.ErrCodeUnsupported, "%s cache cannot be cleared", res.backend)
	}

	if all {
		res.entries, err = cl.Clear(ctx, "")
		if err != nil {
			return res, fmt.Errorf("clear cache: %w", err)
		}
		return res, nil
	}

	key := catalogKey(cfg)
	if _, hit, err := cc.Get(ctx, key); err == nil && hit {
		res.catalog = true
	}
	if err := cc.Delete(ctx, key); err != nil {
		return res, fmt.Errorf("drop catalog %s: %w", key, err)
	}
	res.entries, err = cl.Clear(ctx, siteScope(cfg))
	if err != nil {
		return res, fmt.Errorf("clear pages: %w", err)
	}
	return res, nil
}

// cacheBackend describes the cache cfg selects for the CLI.
func cacheBackend(cfg config.Config) string {
	switch {
	case cfg.Cache.Disabled:
		return "disabled"
	case cfg.Cache.RedisAddr != "":
		return "redis " + cfg.Cache.RedisAddr
	}
	dir, err := cacheDir()
	if err != nil {
		return "disabled"
	}
	return "files " + dir
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the local cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dzikrimr/portfolio-web/pkg/config"
	"github.com/dzikrimr/portfolio-web/pkg/errors"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
	"github.com/dzikrimr/portfolio-web/pkg/source"
)

// seedOpts holds the command-line flags for the seed command.
type seedOpts struct {
	kind string // target backend, overrides source.kind
	path string // sqlite path, overrides source.path
	dump bool   // print the built-in catalog as TOML instead
}

// seedCommand creates the seed command that imports a TOML catalog into a
// database source.
func (c *CLI) seedCommand() *cobra.Command {
	var opts seedOpts

	cmd := &cobra.Command{
		Use:   "seed [catalog.toml]",
		Short: "Import a project catalog into SQLite or MongoDB",
		Long: `Import a TOML project catalog into the configured database, replacing every
stored project. Without a catalog file the built-in projects are imported.

Projects without an id get a UUID derived from their title and place in the
file; projects without positions are numbered in file order.

Use --dump to print the built-in catalog as TOML, a starting point for your
own catalog file.`,
		Example: `  portfolio seed examples/projects.toml --to sqlite --path portfolio.db
  portfolio seed --dump > projects.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.dump {
				return source.EncodeCatalog(os.Stdout, portfolio.Seed())
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if opts.kind != "" {
				cfg.Source.Kind = opts.kind
			}
			if opts.path != "" {
				cfg.Source.Path = opts.path
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			var catalog string
			if len(args) == 1 {
				catalog = args[0]
			}
			return runSeed(cmd.Context(), cfg, catalog)
		},
	}

	cmd.Flags().StringVar(&opts.kind, "to", "", "target source: sqlite or mongo (default from config)")
	cmd.Flags().StringVar(&opts.path, "path", "", "sqlite database path (default from config)")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "print the built-in catalog as TOML")

	return cmd
}

// runSeed replaces the projects of the configured database with the catalog
// at path, or with the built-in catalog when path is empty. The cached
// catalog is invalidated so servers pick up the change.
func runSeed(ctx context.Context, cfg config.Config, path string) error {
	logger := loggerFromContext(ctx)

	if cfg.Source.Kind != config.SourceSQLite && cfg.Source.Kind != config.SourceMongo {
		return errors.New(errors.ErrCodeInvalidSource, "cannot seed source %q: use sqlite or mongo", cfg.Source.Kind)
	}

	projects := portfolio.Seed()
	if path == "" {
		printWarning("No catalog given, importing the built-in projects")
	} else {
		var err error
		if projects, err = source.ReadCatalog(path); err != nil {
			return err
		}
	}
	projects, err := source.Prepare(projects)
	if err != nil {
		return err
	}
	logger.Debugf("Read %s", formatCount(len(projects), "project"))

	c, err := openCache(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer c.Close()
	src, err := openSource(ctx, cfg, c)
	if err != nil {
		return err
	}
	defer src.Close()

	w, ok := src.(source.Writer)
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "source %q is read-only", cfg.Source.Kind)
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Writing projects...")
	spinner.Start()
	if err := w.ReplaceProjects(ctx, projects); err != nil {
		spinner.StopWithError("Seed failed")
		return err
	}
	spinner.StopWithSuccess("Seeded " + formatCount(len(projects), "project"))
	prog.done("Seed complete")

	printKeyValue("Source", cfg.Source.Kind)
	printKeyValue("Location", cfg.Location())
	printSeedSummary(os.Stdout, projects)
	printNextStep("Serve it", "portfolio serve")
	return nil
}

// printSeedSummary lists the imported projects in carousel order.
func printSeedSummary(w io.Writer, projects []portfolio.Project) {
	for _, p := range source.Sort(projects) {
		io.WriteString(w, "  "+StyleDim.Render(p.ID)+" "+StyleValue.Render(p.Title)+"\n")
	}
}

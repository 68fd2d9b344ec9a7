package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dzikrimr/portfolio-web/pkg/carousel"
	"github.com/dzikrimr/portfolio-web/pkg/config"
	"github.com/dzikrimr/portfolio-web/pkg/errors"
	"github.com/dzikrimr/portfolio-web/pkg/observability"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
	"github.com/dzikrimr/portfolio-web/pkg/render"
)

const (
	formatHTML = "html"
	formatJSON = "json"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single format) or base path (several)
	formats []string // output formats: "html", "json"
	focus   int      // focused card; -1 keeps the initial placement
	detail  string   // project ID whose detail page to render instead
	image   int      // gallery image of the detail page
	noCache bool     // bypass the catalog cache
}

// renderCommand creates the render command that writes the carousel as a
// static page or as JSON.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{focus: -1}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the carousel to HTML or JSON",
		Long: `Render the carousel as the server would, without starting it.

With a single format and no --output the result is written to stdout. With
several formats, --output is a base path and each format gets its extension.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if opts.detail != "" {
				if err := errors.ValidateProjectID(opts.detail); err != nil {
					return err
				}
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if opts.noCache {
				cfg.Cache.Disabled = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runRender(cmd.Context(), cfg, &opts, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), json (comma-separated)")
	cmd.Flags().IntVar(&opts.focus, "focus", opts.focus, "focused card index (default: middle card)")
	cmd.Flags().StringVar(&opts.detail, "detail", "", "render the detail page of this project ID")
	cmd.Flags().IntVar(&opts.image, "image", 0, "gallery image shown on the detail page")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the catalog cache")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["html"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatHTML}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatHTML: true, formatJSON: true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'html' or 'json')", f)
		}
	}
	return nil
}

// basePath strips a known format extension from output.
func basePath(output string) string {
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the catalog, restores the requested focus and writes every
// requested format. A single format without --output goes to stdout.
func runRender(ctx context.Context, cfg config.Config, opts *renderOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)

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

	projects, err := src.Projects(ctx)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s from %s", formatCount(len(projects), "project"), cfg.Source.Kind)

	site := render.Site{Title: cfg.Site.Title, Subtitle: cfg.Site.Subtitle, Owner: cfg.Site.Owner}
	car := carousel.New(projects, cfg.Policy())
	if opts.focus >= 0 {
		car.Controller().JumpTo(opts.focus)
	}

	if len(opts.formats) == 1 && opts.output == "" {
		data, err := renderFormat(ctx, car, site, cfg.Carousel.Threshold, opts, opts.formats[0])
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	for _, format := range opts.formats {
		data, err := renderFormat(ctx, car, site, cfg.Carousel.Threshold, opts, format)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		path := opts.output
		if len(opts.formats) > 1 {
			path = fmt.Sprintf("%s.%s", basePath(opts.output), format)
		}
		if err := writeOutput(path, data); err != nil {
			return err
		}
		logger.Infof("Generated %s", path)
		printFile(path)
	}
	return nil
}

// renderFormat renders the carousel, or the detail page when opts.detail is
// set, in one format.
func renderFormat(ctx context.Context, car *carousel.Carousel[portfolio.Project], site render.Site, threshold float64, opts *renderOpts, format string) ([]byte, error) {
	start := time.Now()
	var (
		data []byte
		err  error
	)
	view := render.NewView(car, site, threshold)
	switch {
	case opts.detail != "":
		data, err = renderDetail(ctx, car, site, opts, format)
	case format == formatJSON:
		data, err = render.RenderJSON(view)
	default:
		var buf bytes.Buffer
		err = render.Page(view).Render(ctx, &buf)
		data = buf.Bytes()
	}
	observability.Carousel().OnRender(ctx, format, view.Count, time.Since(start), err)
	return data, err
}

func renderDetail(ctx context.Context, car *carousel.Carousel[portfolio.Project], site render.Site, opts *renderOpts, format string) ([]byte, error) {
	if format != formatHTML {
		return nil, errors.New(errors.ErrCodeUnsupported, "detail pages render as html only")
	}
	i := car.IndexOf(opts.detail)
	if i < 0 {
		return nil, errors.New(errors.ErrCodeProjectNotFound, "project %q not found", opts.detail)
	}
	p := car.Cards()[i]
	gallery := render.NewGallery(p)
	gallery.JumpTo(opts.image)
	focus, _ := car.Controller().Focus()

	var buf bytes.Buffer
	if err := render.DetailPage(render.NewDetail(site, p, gallery, focus)).Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dzikrimr/portfolio-web/pkg/render"
)

// browseCommand creates the browse command that shows the carousel in the
// terminal.
func (c *CLI) browseCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the portfolio in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if noCache {
				cfg.Cache.Disabled = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			cc, err := openCache(ctx, cfg, true)
			if err != nil {
				return err
			}
			defer cc.Close()
			src, err := openSource(ctx, cfg, cc)
			if err != nil {
				return err
			}
			defer src.Close()

			projects, err := loadCatalog(ctx, src, os.Stderr)
			if err != nil {
				return err
			}

			site := render.Site{Title: cfg.Site.Title, Subtitle: cfg.Site.Subtitle, Owner: cfg.Site.Owner}
			model := NewBrowseModel(site, projects, cfg.Policy(), cfg.Carousel.Threshold)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the catalog cache")

	return cmd
}

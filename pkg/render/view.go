package render

import (
	"github.com/dzikrimr/portfolio-web/pkg/carousel"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
)

// Site is the text shown around the carousel.
type Site struct {
	Title    string
	Subtitle string
	Owner    string
}

// DefaultSite returns the section header of the original site.
func DefaultSite() Site {
	return Site{Title: "Portfolio", Subtitle: "SELECTED PROJECTS"}
}

// View is everything needed to render the projects section once.
type View struct {
	Site       Site
	Focus      int
	HasFocus   bool
	Count      int
	Slides     []carousel.Slide[portfolio.Project]
	Indicators []carousel.Indicator
	Threshold  float64
}

// NewView snapshots c for rendering.
func NewView(c *carousel.Carousel[portfolio.Project], site Site, threshold float64) View {
	focus, ok := c.Controller().Focus()
	return View{
		Site:       site,
		Focus:      focus,
		HasFocus:   ok,
		Count:      c.Len(),
		Slides:     c.Slides(),
		Indicators: c.Indicators(),
		Threshold:  threshold,
	}
}

// Detail is everything needed to render one project's detail view.
type Detail struct {
	Site       Site
	Project    portfolio.Project
	Image      int
	Indicators []carousel.Indicator

	// Focus is the carousel focus to return to when the view closes.
	Focus int
}

// NewDetail snapshots a project and its gallery controller. The gallery
// controller must be sized to the project's images.
func NewDetail(site Site, p portfolio.Project, gallery *carousel.Controller, focus int) Detail {
	image, _ := gallery.Focus()
	return Detail{
		Site:       site,
		Project:    p,
		Image:      image,
		Indicators: gallery.Indicators(),
		Focus:      focus,
	}
}

// NewGallery returns the image controller of a detail view. It always opens
// on the first image.
func NewGallery(p portfolio.Project) *carousel.Controller {
	return carousel.NewController(len(p.Images), carousel.WithPlacement(carousel.First))
}

// CurrentImage returns the gallery image in view, or the placeholder.
func (d Detail) CurrentImage() string {
	if d.Image >= 0 && d.Image < len(d.Project.Images) {
		return d.Project.Images[d.Image]
	}
	return portfolio.PlaceholderImage
}

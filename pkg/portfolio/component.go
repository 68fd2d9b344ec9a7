package portfolio

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/dzikrimr/portfolio-web/internal/markup"
)

// Component renders the card body: primary image with an image-count badge,
// up to three tags, title, truncated description and the detail and
// external links. detailHref is where "View Detail" points.
func (p Project) Component(detailHref string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pw := markup.New(w)
		pw.Printf(`<div class="glass-card overflow-hidden flex flex-col h-full">`)
		pw.Printf(`<div class="card-media"><img src="%s" alt="%s" loading="lazy">`,
			templ.EscapeString(p.PrimaryImage()), templ.EscapeString(p.Title))
		if p.HasGallery() {
			pw.Printf(`<span class="card-badge">%d</span>`, len(p.Images))
		}
		pw.Printf(`</div><div class="card-body">`)
		if tags := p.CardTags(); len(tags) > 0 {
			pw.Printf(`<div class="card-tags">`)
			for _, tag := range tags {
				pw.Printf(`<span class="tag">%s</span>`, templ.EscapeString(tag))
			}
			pw.Printf(`</div>`)
		}
		pw.Printf(`<h3>%s</h3><p>%s</p>`, templ.EscapeString(p.Title), templ.EscapeString(p.CardDescription()))
		pw.Printf(`<div class="card-actions"><a class="button" href="%s">View Detail</a>`,
			templ.EscapeString(string(templ.URL(detailHref))))
		if p.Link != "" {
			pw.Printf(`<a class="button icon" href="%s" rel="noopener noreferrer" aria-label="Open project">&#8599;</a>`,
				templ.EscapeString(string(templ.URL(p.Link))))
		}
		pw.Printf(`</div></div></div>`)
		return pw.Err()
	})
}

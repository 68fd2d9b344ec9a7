package render

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/dzikrimr/portfolio-web/internal/markup"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
)

const pageCSS = `
    body { margin: 0; font-family: system-ui, sans-serif; background: #0b0b10; color: #f5f5f7; }
    .section { padding: 6rem 1.5rem; overflow: hidden; }
    .section-header { text-align: center; margin-bottom: 4rem; }
    .section-header .subtitle { letter-spacing: 0.3em; font-size: 0.75rem; color: #c9a86a; }
    .section-header h2 { font-size: 3rem; margin: 0.5rem 0 0; }
    .stage { position: relative; height: 520px; perspective: 1500px; user-select: none; touch-action: pan-y; }
    .slide { position: absolute; left: 50%; top: 0; width: 340px; margin-left: -170px; transform-style: preserve-3d; }
    .glass-card { background: rgba(255,255,255,0.06); border: 1px solid rgba(255,255,255,0.12); border-radius: 1.25rem; backdrop-filter: blur(12px); }
    .card-media { position: relative; aspect-ratio: 4 / 3; }
    .card-media img { width: 100%; height: 100%; object-fit: cover; display: block; }
    .card-badge { position: absolute; top: 0.75rem; right: 0.75rem; background: rgba(0,0,0,0.6); border-radius: 999px; padding: 0.1rem 0.6rem; font-size: 0.75rem; }
    .card-body { padding: 1.25rem; }
    .card-tags { display: flex; gap: 0.4rem; flex-wrap: wrap; }
    .tag { font-size: 0.7rem; border: 1px solid rgba(201,168,106,0.5); color: #c9a86a; border-radius: 999px; padding: 0.1rem 0.5rem; }
    .card-actions { display: flex; gap: 0.5rem; margin-top: 1rem; }
    .button { color: inherit; text-decoration: none; border: 1px solid rgba(255,255,255,0.2); border-radius: 0.6rem; padding: 0.45rem 0.9rem; }
    .controls { display: flex; justify-content: center; align-items: center; gap: 1.5rem; margin-top: 2rem; }
    .indicators { display: flex; gap: 0.5rem; }
    .indicator { width: 0.5rem; height: 0.5rem; border-radius: 999px; background: rgba(255,255,255,0.25); display: block; }
    .indicator.active { width: 2rem; background: #c9a86a; }
    .empty { text-align: center; color: #8a8a95; }
    .modal { max-width: 960px; margin: 0 auto; }
    .gallery { position: relative; }
    .gallery img { width: 100%; border-radius: 1rem; display: block; }`

const gestureJS = `
    (function () {
      var stage = document.querySelector('[data-carousel]');
      if (!stage) return;
      var origin = null, source = '';
      var threshold = parseFloat(stage.dataset.threshold) || 0;
      function start(x, s) { origin = x; source = s; }
      function cancel() { origin = null; }
      function end(x) {
        if (origin === null) return;
        var dx = x - origin, from = origin;
        origin = null;
        if (Math.abs(dx) <= threshold) return;
        window.location.href = stage.dataset.gesture + '&start=' + from + '&end=' + x + '&source=' + source;
      }
      stage.addEventListener('mousedown', function (e) { start(e.clientX, 'pointer'); });
      stage.addEventListener('mouseup', function (e) { end(e.clientX); });
      stage.addEventListener('mouseleave', cancel);
      stage.addEventListener('touchstart', function (e) { start(e.touches[0].clientX, 'touch'); }, { passive: true });
      stage.addEventListener('touchend', function (e) { end(e.changedTouches[0].clientX); });
      stage.addEventListener('touchcancel', cancel);
      document.addEventListener('keydown', function (e) {
        if (e.key === 'ArrowLeft' && stage.dataset.prev) window.location.href = stage.dataset.prev;
        if (e.key === 'ArrowRight' && stage.dataset.next) window.location.href = stage.dataset.next;
      });
    })();`

const galleryJS = `
    (function () {
      var g = document.querySelector('[data-gallery]');
      if (!g) return;
      document.addEventListener('keydown', function (e) {
        if (e.key === 'ArrowLeft' && g.dataset.prev) window.location.href = g.dataset.prev;
        if (e.key === 'ArrowRight' && g.dataset.next) window.location.href = g.dataset.next;
        if (e.key === 'Escape' && g.dataset.close) window.location.href = g.dataset.close;
      });
    })();`

// Page renders a complete HTML document with the projects section.
func Page(v View) templ.Component {
	return document(v.Site, v.Site.Title, Section(v), gestureJS)
}

// Section renders the projects section: header, stage, controls and
// indicators. An empty view renders the header and a notice.
func Section(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Printf(`<section id="projects" class="section">`)
		m.Printf(`<div class="section-header"><span class="subtitle">%s</span><h2>%s</h2></div>`,
			templ.EscapeString(v.Site.Subtitle), templ.EscapeString(v.Site.Title))
		if !v.HasFocus {
			m.Printf(`<p class="empty">No projects yet.</p></section>`)
			return m.Err()
		}

		prev, next := NavHref(v.Focus, DirPrev), NavHref(v.Focus, DirNext)
		m.Printf(`<div class="stage" data-carousel data-focus="%d" data-count="%d" data-threshold="%s" data-gesture="%s"`,
			v.Focus, v.Count, num(v.Threshold), templ.EscapeString(GestureHref(v.Focus)))
		if v.Count > 1 {
			m.Printf(` data-prev="%s" data-next="%s"`, templ.EscapeString(prev), templ.EscapeString(next))
		}
		m.Printf(`>`)
		for _, s := range v.Slides {
			m.Printf(`<article class="slide" id="slide-%s" data-index="%d" data-distance="%d" style="%s"`,
				templ.EscapeString(s.Card.ID), s.Index, s.Visual.Distance, templ.EscapeString(Style(s.Visual)))
			if !s.Visual.Interactable {
				m.Printf(` aria-hidden="true" inert`)
			}
			m.Printf(`>`)
			m.Render(ctx, s.Card.Component(DetailHref(s.Card.ID, v.Focus, 0)))
			m.Printf(`</article>`)
		}
		m.Printf(`</div>`)

		m.Printf(`<nav class="controls" aria-label="Projects">`)
		if v.Count > 1 {
			m.Printf(`<a class="button" href="%s" aria-label="Previous project">&#8592;</a>`, templ.EscapeString(prev))
		}
		m.Printf(`<div class="indicators">`)
		for _, ind := range v.Indicators {
			if ind.Active {
				m.Printf(`<span class="indicator active" aria-current="true"></span>`)
				continue
			}
			m.Printf(`<a class="indicator" href="%s" aria-label="Go to project %d"></a>`,
				templ.EscapeString(JumpHref(v.Focus, ind.Index)), ind.Index+1)
		}
		m.Printf(`</div>`)
		if v.Count > 1 {
			m.Printf(`<a class="button" href="%s" aria-label="Next project">&#8594;</a>`, templ.EscapeString(next))
		}
		m.Printf(`</nav></section>`)
		return m.Err()
	})
}

// DetailPage renders a complete HTML document with one project and its
// image gallery.
func DetailPage(d Detail) templ.Component {
	return document(d.Site, d.Project.Title+" | "+d.Site.Title, DetailSection(d), galleryJS)
}

// DetailSection renders the project detail (modal) view.
func DetailSection(d Detail) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		p := d.Project
		closeHref := ProjectsHref(d.Focus)
		m.Printf(`<section class="section modal" role="dialog" aria-label="%s">`, templ.EscapeString(p.Title))
		m.Printf(`<div class="gallery" data-gallery data-close="%s"`, templ.EscapeString(closeHref))
		gallery := len(p.Images) > 1
		if gallery {
			m.Printf(` data-prev="%s" data-next="%s"`,
				templ.EscapeString(GalleryHref(p.ID, d.Focus, d.Image, DirPrev)),
				templ.EscapeString(GalleryHref(p.ID, d.Focus, d.Image, DirNext)))
		}
		m.Printf(`><img src="%s" alt="%s">`, templ.EscapeString(d.CurrentImage()), templ.EscapeString(p.Title))
		if gallery {
			m.Printf(`<div class="controls"><a class="button" href="%s" aria-label="Previous image">&#8592;</a>`,
				templ.EscapeString(GalleryHref(p.ID, d.Focus, d.Image, DirPrev)))
			m.Printf(`<div class="indicators">`)
			for _, ind := range d.Indicators {
				class := "indicator"
				if ind.Active {
					class += " active"
				}
				m.Printf(`<a class="%s" href="%s" aria-label="Image %d"></a>`,
					class, templ.EscapeString(DetailHref(p.ID, d.Focus, ind.Index)), ind.Index+1)
			}
			m.Printf(`</div><a class="button" href="%s" aria-label="Next image">&#8594;</a></div>`,
				templ.EscapeString(GalleryHref(p.ID, d.Focus, d.Image, DirNext)))
		}
		m.Printf(`</div><div class="card-body">`)
		if len(p.Tags) > 0 {
			m.Printf(`<div class="card-tags">`)
			for _, tag := range p.Tags {
				m.Printf(`<span class="tag">%s</span>`, templ.EscapeString(tag))
			}
			m.Printf(`</div>`)
		}
		m.Printf(`<h2>%s</h2><p>%s</p>`, templ.EscapeString(p.Title), templ.EscapeString(p.Description))
		m.Printf(`<div class="card-actions"><a class="button" href="%s">Close</a>`, templ.EscapeString(closeHref))
		if p.Link != "" {
			m.Printf(`<a class="button" href="%s" rel="noopener noreferrer" target="_blank">Visit project</a>`,
				templ.EscapeString(string(templ.URL(p.Link))))
		}
		m.Printf(`</div></div></section>`)
		return m.Err()
	})
}

func document(site Site, title string, body templ.Component, script string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Printf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		m.Printf(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.Printf(`<title>%s</title>`, templ.EscapeString(title))
		if site.Owner != "" {
			m.Printf(`<meta name="author" content="%s">`, templ.EscapeString(site.Owner))
		}
		m.Printf(`<style>%s</style></head><body>`, pageCSS)
		m.Render(ctx, body)
		m.Printf(`<script>%s</script></body></html>`, script)
		return m.Err()
	})
}

// CardComponent is the capability the HTML sink needs from a card.
type CardComponent interface {
	Component(detailHref string) templ.Component
}

var _ CardComponent = portfolio.Project{}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dzikrimr/portfolio-web/pkg/buildinfo"
	"github.com/dzikrimr/portfolio-web/pkg/cache"
	"github.com/dzikrimr/portfolio-web/pkg/carousel"
	"github.com/dzikrimr/portfolio-web/pkg/errors"
	"github.com/dzikrimr/portfolio-web/pkg/observability"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
	"github.com/dzikrimr/portfolio-web/pkg/render"
)

const (
	contentHTML = "text/html; charset=utf-8"
	contentJSON = "application/json"
)

// state is the carousel rebuilt for one request.
type state struct {
	projects []portfolio.Project
	carousel *carousel.Carousel[portfolio.Project]
	hash     string
}

func (st state) focus() int {
	f, _ := st.carousel.Controller().Focus()
	return f
}

// load fetches the catalog and restores the focus carried by the focus
// query parameter. A missing or out-of-range focus keeps the initial
// placement.
func (s *Server) load(r *http.Request) (state, error) {
	projects, err := s.opts.Source.Projects(r.Context())
	if err != nil {
		return state{}, catalogError(err)
	}
	c := carousel.New(projects, s.opts.Policy)
	if k, ok := intParam(r, "focus"); ok {
		c.Controller().JumpTo(k)
	}
	data, _ := json.Marshal(projects)
	return state{projects: projects, carousel: c, hash: cache.Hash(data)}, nil
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	st, err := s.load(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	key := s.opts.Keyer.PageKey(st.hash, cache.PageKeyOpts{
		Focus:     st.focus(),
		Format:    "html",
		Spacing:   s.opts.Policy.Spacing,
		Threshold: s.opts.Threshold,
	})
	view := render.NewView(st.carousel, s.opts.Site, s.opts.Threshold)
	s.serveComponent(w, r, key, "page", "html", view.Count, render.Page(view))
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	st, err := s.load(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ctl := st.carousel.Controller()
	from := st.focus()
	dir := r.URL.Query().Get("dir")
	var moved bool
	switch dir {
	case render.DirNext:
		moved = ctl.Advance()
	case render.DirPrev:
		moved = ctl.Retreat()
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "dir must be %q or %q", render.DirNext, render.DirPrev))
		return
	}
	observability.Carousel().OnNavigate(r.Context(), dir, from, st.focus(), moved)
	s.redirect(w, r, st)
}

func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	to, ok := intParam(r, "to")
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "to must be an integer"))
		return
	}
	st, err := s.load(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	from := st.focus()
	moved := st.carousel.Controller().JumpTo(to)
	observability.Carousel().OnNavigate(r.Context(), "jump", from, st.focus(), moved)
	s.redirect(w, r, st)
}

func (s *Server) handleGesture(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err1 := strconv.ParseFloat(q.Get("start"), 64)
	end, err2 := strconv.ParseFloat(q.Get("end"), 64)
	if err1 != nil || err2 != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "start and end must be numbers"))
		return
	}
	src, err := carousel.ParseInputSource(q.Get("source"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "source"))
		return
	}
	st, err := s.load(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	intent := carousel.NewRecognizer(s.opts.Threshold).Recognize(src, start, end)
	observability.Carousel().OnGesture(r.Context(), src.String(), intent.String(), end-start)

	from := st.focus()
	if moved := st.carousel.Controller().Apply(intent); intent != carousel.IntentNone {
		observability.Carousel().OnNavigate(r.Context(), intent.String(), from, st.focus(), moved)
	}
	s.redirect(w, r, st)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateProjectID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	st, err := s.load(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, _, ok := portfolio.Find(st.projects, id)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeProjectNotFound, "project %q not found", id))
		return
	}

	gallery := render.NewGallery(p)
	if k, ok := intParam(r, "image"); ok {
		gallery.JumpTo(k)
	}
	switch r.URL.Query().Get("dir") {
	case render.DirNext:
		gallery.Advance()
	case render.DirPrev:
		gallery.Retreat()
	}
	d := render.NewDetail(s.opts.Site, p, gallery, st.focus())
	key := s.opts.Keyer.DetailKey(st.hash, p.ID, d.Image)
	s.serveComponent(w, r, key, "detail", "html", 1, render.DetailPage(d))
}

func (s *Server) handleAPICarousel(w http.ResponseWriter, r *http.Request) {
	st, err := s.load(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	start := time.Now()
	view := render.NewView(st.carousel, s.opts.Site, s.opts.Threshold)
	data, err := render.RenderJSON(view)
	observability.Carousel().OnRender(r.Context(), "json", view.Count, time.Since(start), err)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode carousel"))
		return
	}
	w.Header().Set("Content-Type", contentJSON)
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", contentJSON)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// redirect sends the client back to the carousel at the request's new
// focus.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, st state) {
	target := render.ProjectsPath
	if f, ok := st.carousel.Controller().Focus(); ok {
		target = render.ProjectsHref(f)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// serveComponent renders c, going through the page cache when one is
// configured.
func (s *Server) serveComponent(w http.ResponseWriter, r *http.Request, key, keyType, format string, cards int, c templ.Component) {
	ctx := r.Context()
	if body, ok := s.cacheGet(ctx, key, keyType); ok {
		w.Header().Set("Content-Type", contentHTML)
		w.Header().Set("X-Cache", "hit")
		_, _ = w.Write(body)
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	err := c.Render(ctx, &buf)
	observability.Carousel().OnRender(ctx, format, cards, time.Since(start), err)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render %s", keyType))
		return
	}
	s.cacheSet(ctx, key, keyType, buf.Bytes())
	w.Header().Set("Content-Type", contentHTML)
	w.Header().Set("X-Cache", "miss")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) cacheGet(ctx context.Context, key, keyType string) ([]byte, bool) {
	if s.opts.Cache == nil {
		return nil, false
	}
	body, hit, err := s.opts.Cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("page cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return body, true
}

func (s *Server) cacheSet(ctx context.Context, key, keyType string, body []byte) {
	if s.opts.Cache == nil {
		return
	}
	if err := s.opts.Cache.Set(ctx, key, body, s.opts.CacheTTL); err != nil {
		s.logger.Warn("page cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(body))
}

func intParam(r *http.Request, name string) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

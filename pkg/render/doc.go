// Package render turns a projects carousel into output for browsers and
// API clients.
//
// # Overview
//
// The carousel engine only computes numbers: a focused index, a Visual per
// card and an indicator row. This package maps those numbers to concrete
// output:
//
//   - [Style] converts a Visual into the inline CSS of one slide
//   - [Page] renders the full projects section as a templ component
//   - [DetailPage] renders one project with its own image gallery
//   - [RenderJSON] encodes the computed carousel for API clients
//
// # Stateless Navigation
//
// The server keeps no per-visitor state. Every link on a rendered page
// carries the focus it was rendered with (see [NavHref], [JumpHref] and
// [GestureHref]); the next request rebuilds a controller from that focus
// and applies exactly one action.
//
//	c := carousel.New(projects, policy)
//	c.Controller().JumpTo(focus)
//	err := render.Page(render.NewView(c, site, threshold)).Render(ctx, w)
package render

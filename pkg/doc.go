// Package pkg provides the libraries behind the portfolio service.
//
// # Overview
//
// The portfolio shows a set of projects as a circular 3D carousel. The pkg
// directory is organized into four areas:
//
//  1. [carousel] - The engine: ring arithmetic, visual policy, gestures and
//     the focus controller
//  2. [portfolio] - The project record and its card component
//  3. [source], [cache] - Where catalogs come from (TOML, SQLite, MongoDB,
//     HTTP) and how they are cached (file, Redis)
//  4. [render], [server] - HTML and JSON output and the HTTP surface
//
// Supporting packages: [config] loads settings, [errors] defines structured
// error codes and [observability] carries metrics and tracing hooks.
//
// # Architecture
//
// A request flows through the packages like this:
//
//	source (catalog)
//	     ↓
//	carousel.New + Controller.JumpTo(focus)
//	     ↓
//	one navigation action (advance, retreat, jump or gesture)
//	     ↓
//	render.Page / render.RenderJSON
//
// No carousel state outlives a request; the focus travels in the URL.
//
// # Quick Start
//
// Build a carousel and render it:
//
//	import (
//	    "github.com/dzikrimr/portfolio-web/pkg/carousel"
//	    "github.com/dzikrimr/portfolio-web/pkg/portfolio"
//	    "github.com/dzikrimr/portfolio-web/pkg/render"
//	)
//
//	c := carousel.New(portfolio.Seed(), carousel.DefaultPolicy())
//	c.Controller().Advance()
//	view := render.NewView(c, render.DefaultSite(), carousel.DefaultThreshold)
//	err := render.Page(view).Render(ctx, w)
package pkg

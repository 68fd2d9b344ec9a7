package render

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/dzikrimr/portfolio-web/pkg/carousel"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
)

func newView(t *testing.T, projects []portfolio.Project, focus int) View {
	t.Helper()
	c := carousel.New(projects, carousel.DefaultPolicy())
	c.Controller().JumpTo(focus)
	return NewView(c, DefaultSite(), carousel.DefaultThreshold)
}

func renderString(t *testing.T, c interface {
	Render(context.Context, io.Writer) error
}) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return buf.String()
}

func TestStyle(t *testing.T) {
	p := carousel.DefaultPolicy()
	tests := []struct {
		name string
		v    carousel.Visual
		want []string
	}{
		{
			name: "focused",
			v:    p.Describe(0, 5),
			want: []string{
				"translateX(0px) scale(1) rotateY(0deg)",
				"opacity: 1;",
				"blur(0px)",
				"z-index: 40;",
				"pointer-events: auto;",
				"cubic-bezier(0.34, 1.56, 0.64, 1)",
				"backface-visibility: hidden;",
				"will-change: transform, opacity;",
			},
		},
		{
			name: "right neighbour",
			v:    p.Describe(1, 5),
			want: []string{"translateX(280px) scale(0.85) rotateY(-12deg)", "opacity: 0.6;", "blur(1px)", "pointer-events: none;"},
		},
		{
			name: "left second",
			v:    p.Describe(-2, 5),
			want: []string{"translateX(-560px) scale(0.7) rotateY(20deg)", "opacity: 0.2;", "blur(4px)", "z-index: 20;"},
		},
		{
			name: "crossing",
			v:    p.Describe(3, 6),
			want: []string{"opacity: 0;", "transition: opacity 300ms ease-in-out;"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Style(tt.v)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Style() = %q, missing %q", got, w)
				}
			}
		})
	}
}

func TestNumAvoidsNegativeZero(t *testing.T) {
	if got := num(math.Copysign(0, -1)); got != "0" {
		t.Errorf("num(-0) = %q", got)
	}
	if got := num(0.85); got != "0.85" {
		t.Errorf("num(0.85) = %q", got)
	}
}

func TestHrefs(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{ProjectsHref(2), "/projects?focus=2"},
		{NavHref(1, DirNext), "/projects/nav?dir=next&focus=1"},
		{JumpHref(1, 3), "/projects/jump?focus=1&to=3"},
		{GestureHref(0), "/projects/gesture?focus=0"},
		{DetailHref("a b", 1, 0), "/projects/a%20b?focus=1&image=0"},
		{GalleryHref("p", 1, 2, DirPrev), "/projects/p?dir=prev&focus=1&image=2"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("href = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestPage(t *testing.T) {
	v := newView(t, portfolio.Seed(), 1)
	out := renderString(t, Page(v))

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Portfolio</title>",
		"SELECTED PROJECTS",
		`data-focus="1"`,
		`data-gesture="/projects/gesture?focus=1"`,
		`id="slide-analytics-dashboard"`,
		`id="slide-creative-agency"`,
		`href="/projects/nav?dir=prev&amp;focus=1"`,
		`href="/projects/jump?focus=1&amp;to=0"`,
		`class="indicator active"`,
		"Luxury E-Commerce",
		"addEventListener('touchstart'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if n := strings.Count(out, `class="indicator"`) + strings.Count(out, `class="indicator active"`); n != 3 {
		t.Errorf("indicators = %d, want 3", n)
	}
	if n := strings.Count(out, "inert"); n != 2 {
		t.Errorf("inert slides = %d, want 2 (only the focus is interactable)", n)
	}
}

func TestPageDragScript(t *testing.T) {
	out := renderString(t, Page(newView(t, portfolio.Seed(), 1)))
	tests := []struct {
		name string
		frag string
		want bool
	}{
		{"threshold attribute", `data-threshold="50"`, true},
		{"threshold read by script", "stage.dataset.threshold", true},
		{"short drags stay local", "Math.abs(dx) <= threshold", true},
		{"release on stage", "stage.addEventListener('mouseup'", true},
		{"leaving the stage cancels", "stage.addEventListener('mouseleave', cancel)", true},
		{"touch cancel", "stage.addEventListener('touchcancel', cancel)", true},
		{"release outside ignored", "window.addEventListener('mouseup'", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Contains(out, tt.frag); got != tt.want {
				t.Errorf("contains %q = %v, want %v", tt.frag, got, tt.want)
			}
		})
	}
}

func TestPageEmpty(t *testing.T) {
	v := newView(t, nil, 0)
	out := renderString(t, Page(v))
	if !strings.Contains(out, "No projects yet.") {
		t.Error("empty page should show a notice")
	}
	if strings.Contains(out, "data-carousel") {
		t.Error("empty page should not render a stage")
	}
}

func TestPageSingleCardHasNoArrows(t *testing.T) {
	v := newView(t, portfolio.Seed()[:1], 0)
	out := renderString(t, Section(v))
	if strings.Contains(out, "Previous project") || strings.Contains(out, "data-prev") {
		t.Error("single card should not render previous/next controls")
	}
}

func TestPageEscapesSiteText(t *testing.T) {
	v := newView(t, portfolio.Seed(), 0)
	v.Site = Site{Title: "<b>", Subtitle: "A & B", Owner: `"me"`}
	out := renderString(t, Page(v))
	if strings.Contains(out, "<b>") {
		t.Error("title should be escaped")
	}
	if !strings.Contains(out, "A &amp; B") {
		t.Error("subtitle should be escaped")
	}
}

func TestDetailPage(t *testing.T) {
	p := portfolio.Project{
		ID:          "p1",
		Title:       "Gallery",
		Description: strings.Repeat("y", 150),
		Images:      []string{"/1.jpg", "/2.jpg", "/3.jpg"},
		Tags:        []string{"a", "b", "c", "d"},
		Link:        "https://example.com",
	}
	g := NewGallery(p)
	if i, _ := g.Focus(); i != 0 {
		t.Fatalf("gallery opens at %d, want 0", i)
	}
	g.Advance()
	d := NewDetail(DefaultSite(), p, g, 2)
	out := renderString(t, DetailPage(d))

	for _, want := range []string{
		"<title>Gallery | Portfolio</title>",
		`src="/2.jpg"`,
		strings.Repeat("y", 150),
		`<span class="tag">d</span>`,
		`data-close="/projects?focus=2"`,
		`href="/projects/p1?dir=next&amp;focus=2&amp;image=1"`,
		`href="https://example.com"`,
		"Escape",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q", want)
		}
	}
}

func TestDetailWithoutGallery(t *testing.T) {
	p := portfolio.Project{ID: "p", Title: "P", Images: []string{"/only.jpg"}}
	g := NewGallery(p)
	if g.Advance() {
		t.Error("single image gallery should not move")
	}
	out := renderString(t, DetailSection(NewDetail(DefaultSite(), p, g, 0)))
	if strings.Contains(out, "Next image") {
		t.Error("single image should not render gallery controls")
	}

	none := NewDetail(DefaultSite(), portfolio.Project{ID: "n", Title: "N"}, NewGallery(portfolio.Project{}), 0)
	if none.CurrentImage() != portfolio.PlaceholderImage {
		t.Errorf("CurrentImage() = %q, want placeholder", none.CurrentImage())
	}
}

func TestRenderJSON(t *testing.T) {
	v := newView(t, portfolio.Seed(), 2)
	data, err := RenderJSON(v)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Focus == nil || *out.Focus != 2 {
		t.Fatalf("focus = %v, want 2", out.Focus)
	}
	if out.Count != 3 || len(out.Slides) != 3 || len(out.Indicators) != 3 {
		t.Fatalf("count/slides/indicators = %d/%d/%d", out.Count, len(out.Slides), len(out.Indicators))
	}
	if !out.Slides[2].Visual.Interactable || out.Slides[0].Visual.Interactable {
		t.Error("only the focused slide should be interactable")
	}
	if out.Slides[0].Visual.Distance != 1 {
		t.Errorf("slide 0 distance = %d, want 1 (wraps right of focus 2)", out.Slides[0].Visual.Distance)
	}
	if out.Links == nil || out.Links.Next != "/projects/nav?dir=next&focus=2" {
		t.Errorf("links = %+v", out.Links)
	}
	if out.Slides[0].Style == "" {
		t.Error("style should be populated")
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(newView(t, nil, 0))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !strings.Contains(string(data), `"focus": null`) {
		t.Errorf("empty focus should be null: %s", data)
	}
	if !strings.Contains(string(data), `"slides": []`) {
		t.Errorf("empty slides should be []: %s", data)
	}
}

package render

import (
	"encoding/json"

	"github.com/dzikrimr/portfolio-web/pkg/carousel"
)

type jsonOutput struct {
	Focus      *int                 `json:"focus"`
	Count      int                  `json:"count"`
	Threshold  float64              `json:"threshold"`
	Slides     []jsonSlide          `json:"slides"`
	Indicators []carousel.Indicator `json:"indicators"`
	Links      *jsonLinks           `json:"links,omitempty"`
}

type jsonSlide struct {
	ID          string          `json:"id"`
	Index       int             `json:"index"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	ImageCount  int             `json:"image_count"`
	Tags        []string        `json:"tags,omitempty"`
	Link        string          `json:"link,omitempty"`
	Detail      string          `json:"detail"`
	Visual      carousel.Visual `json:"visual"`
	Style       string          `json:"style"`
}

type jsonLinks struct {
	Prev string `json:"prev"`
	Next string `json:"next"`
}

// RenderJSON encodes a view for API clients. Slides carry both the raw
// Visual and the CSS derived from it. An empty view has a null focus and no
// slides.
func RenderJSON(v View) ([]byte, error) {
	out := jsonOutput{
		Count:      v.Count,
		Threshold:  v.Threshold,
		Slides:     make([]jsonSlide, 0, len(v.Slides)),
		Indicators: v.Indicators,
	}
	if out.Indicators == nil {
		out.Indicators = []carousel.Indicator{}
	}
	if v.HasFocus {
		focus := v.Focus
		out.Focus = &focus
		if v.Count > 1 {
			out.Links = &jsonLinks{Prev: NavHref(v.Focus, DirPrev), Next: NavHref(v.Focus, DirNext)}
		}
	}
	for _, s := range v.Slides {
		p := s.Card
		out.Slides = append(out.Slides, jsonSlide{
			ID:          p.ID,
			Index:       s.Index,
			Title:       p.Title,
			Description: p.CardDescription(),
			Image:       p.PrimaryImage(),
			ImageCount:  len(p.Images),
			Tags:        p.CardTags(),
			Link:        p.Link,
			Detail:      DetailHref(p.ID, v.Focus, 0),
			Visual:      s.Visual,
			Style:       Style(s.Visual),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

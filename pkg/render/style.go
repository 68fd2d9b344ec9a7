package render

import (
	"strconv"
	"strings"

	"github.com/dzikrimr/portfolio-web/pkg/carousel"
)

const (
	slideTransition = "transform 600ms cubic-bezier(0.34, 1.56, 0.64, 1), opacity 600ms ease, filter 600ms ease"
	fadeTransition  = "opacity 300ms ease-in-out"
)

// Style returns the inline CSS for a slide with visual v. Slides are
// absolutely positioned at the stage centre; the transform moves them to
// their slot.
func Style(v carousel.Visual) string {
	var b strings.Builder
	b.WriteString("transform: translateX(")
	b.WriteString(num(v.TranslateX))
	b.WriteString("px) scale(")
	b.WriteString(num(v.Scale))
	b.WriteString(") rotateY(")
	b.WriteString(num(v.RotateY))
	b.WriteString("deg); opacity: ")
	b.WriteString(num(v.Opacity))
	b.WriteString("; filter: blur(")
	b.WriteString(num(v.Blur))
	b.WriteString("px); z-index: ")
	b.WriteString(strconv.Itoa(v.ZIndex))
	b.WriteString("; pointer-events: ")
	if v.Interactable {
		b.WriteString("auto")
	} else {
		b.WriteString("none")
	}
	b.WriteString("; transition: ")
	b.WriteString(Transition(v.Transition))
	b.WriteString("; backface-visibility: hidden; will-change: transform, opacity;")
	return b.String()
}

// Transition returns the CSS transition for t.
func Transition(t carousel.Transition) string {
	if t == carousel.TransitionFade {
		return fadeTransition
	}
	return slideTransition
}

func num(f float64) string {
	if f == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

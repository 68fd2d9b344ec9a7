package carousel

import "math"

const (
	// DefaultSpacing is the horizontal distance between adjacent slots in
	// logical pixels.
	DefaultSpacing = 280.0

	// CrossingEpsilon is how close a card's ring offset must be to n/2 for it
	// to count as crossing sides.
	CrossingEpsilon = 0.1
)

// Transition names the animation a renderer should run when a card moves to
// a new Visual.
type Transition string

const (
	// TransitionSlide animates position, scale, rotation, opacity and blur.
	TransitionSlide Transition = "slide"
	// TransitionFade animates opacity only; the transform snaps.
	TransitionFade Transition = "fade"
)

// Visual is the presentation of one card for one focus. It is derived from
// (distance, n) alone and is recomputed for every render.
type Visual struct {
	Distance     int        `json:"distance"`
	TranslateX   float64    `json:"translate_x"`
	Scale        float64    `json:"scale"`
	Opacity      float64    `json:"opacity"`
	RotateY      float64    `json:"rotate_y"`
	Blur         float64    `json:"blur"`
	ZIndex       int        `json:"z_index"`
	Interactable bool       `json:"interactable"`
	Transition   Transition `json:"transition"`
}

// Bucket holds the presentation parameters shared by every card at the same
// |distance| from the focus. Rotate is an unsigned angle in degrees; the
// sign comes from the card's side.
type Bucket struct {
	Scale   float64
	Opacity float64
	Rotate  float64
	Blur    float64
	ZIndex  int
}

// Policy maps circular distances to visuals. The zero value is usable and
// behaves like [DefaultPolicy].
type Policy struct {
	// Spacing is the translation per slot. Zero means DefaultSpacing.
	Spacing float64

	// Buckets is indexed by |distance|; the last entry applies to every
	// larger distance. Nil means the default table.
	Buckets []Bucket
}

var defaultBuckets = []Bucket{
	{Scale: 1, Opacity: 1, Rotate: 0, Blur: 0, ZIndex: 40},
	{Scale: 0.85, Opacity: 0.6, Rotate: 12, Blur: 1, ZIndex: 30},
	{Scale: 0.7, Opacity: 0.2, Rotate: 20, Blur: 4, ZIndex: 20},
	{Scale: 0.5, Opacity: 0, Rotate: 0, Blur: 0, ZIndex: 10},
}

// DefaultPolicy returns the policy used by the portfolio front ends.
func DefaultPolicy() Policy {
	return Policy{Spacing: DefaultSpacing, Buckets: DefaultBuckets()}
}

// DefaultBuckets returns a copy of the default bucket table.
func DefaultBuckets() []Bucket {
	return append([]Bucket(nil), defaultBuckets...)
}

// Crossing reports whether a card at ring offset off (as returned by
// [Offset]) sits exactly opposite the focus of a ring of n cards. Only even
// rings have such a card.
func Crossing(off, n int) bool {
	if n <= 0 {
		return false
	}
	return math.Abs(float64(off)-float64(n)/2) < CrossingEpsilon
}

// Describe returns the visual for a card at signed distance d on a ring of n
// cards. d may be given on either side of a tie (+n/2 or -n/2); both describe
// the same crossing card. An empty ring yields the neutral focused visual.
func (p Policy) Describe(d, n int) Visual {
	if n <= 0 {
		d = 0
	}
	b := p.bucket(abs(d))
	v := Visual{
		Distance:     d,
		TranslateX:   float64(d) * p.spacing(),
		Scale:        b.Scale,
		Opacity:      b.Opacity,
		RotateY:      -float64(sign(d)) * b.Rotate,
		Blur:         b.Blur,
		ZIndex:       b.ZIndex,
		Interactable: d == 0,
		Transition:   TransitionSlide,
	}
	if d != 0 && Crossing(Wrap(d, n), n) {
		v.Opacity = 0
		v.Transition = TransitionFade
	}
	return v
}

// DescribeCard is a convenience for Describe(Distance(i, focus, n), n).
func (p Policy) DescribeCard(i, focus, n int) Visual {
	return p.Describe(Distance(i, focus, n), n)
}

// DescribeAll returns the visuals of every card on a ring of n cards, in
// index order.
func (p Policy) DescribeAll(focus, n int) []Visual {
	if n <= 0 {
		return nil
	}
	out := make([]Visual, n)
	for i := range out {
		out[i] = p.DescribeCard(i, focus, n)
	}
	return out
}

func (p Policy) spacing() float64 {
	if p.Spacing == 0 {
		return DefaultSpacing
	}
	return p.Spacing
}

func (p Policy) bucket(dist int) Bucket {
	buckets := p.Buckets
	if len(buckets) == 0 {
		buckets = defaultBuckets
	}
	if dist >= len(buckets) {
		return buckets[len(buckets)-1]
	}
	return buckets[dist]
}

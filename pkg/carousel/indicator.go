package carousel

// Indicator is one position marker below the carousel.
type Indicator struct {
	Index  int  `json:"index"`
	Active bool `json:"active"`
}

// IsActive reports whether indicator j is highlighted for focus on a ring of
// n cards.
func IsActive(j, focus, n int) bool {
	return n > 0 && j >= 0 && j < n && j == focus
}

// Indicators returns n indicators with only the focused one active.
func Indicators(focus, n int) []Indicator {
	if n <= 0 {
		return nil
	}
	out := make([]Indicator, n)
	for j := range out {
		out[j] = Indicator{Index: j, Active: IsActive(j, focus, n)}
	}
	return out
}

package carousel

// Card is anything a carousel can hold. Only identity is required; how a card
// is drawn is up to the renderer.
type Card interface {
	CardID() string
}

// Slide is one card as it should appear for the current focus.
type Slide[C Card] struct {
	Card   C
	Index  int
	Visual Visual
}

// Carousel binds an ordered collection of cards to a Controller and a
// Policy. Like Controller, it is not safe for concurrent use.
type Carousel[C Card] struct {
	cards  []C
	ctl    *Controller
	policy Policy
}

// New returns a carousel over cards. The slice is copied.
func New[C Card](cards []C, policy Policy, opts ...Option) *Carousel[C] {
	cs := append([]C(nil), cards...)
	return &Carousel[C]{
		cards:  cs,
		ctl:    NewController(len(cs), opts...),
		policy: policy,
	}
}

// Controller exposes the underlying controller for navigation.
func (c *Carousel[C]) Controller() *Controller { return c.ctl }

// Policy returns the transform policy.
func (c *Carousel[C]) Policy() Policy { return c.policy }

// Cards returns the current collection. Callers must not modify it.
func (c *Carousel[C]) Cards() []C { return c.cards }

// Len returns the number of cards.
func (c *Carousel[C]) Len() int { return len(c.cards) }

// SetCards replaces the collection and runs the controller's replacement
// transition. It reports whether the focused index changed.
func (c *Carousel[C]) SetCards(cards []C) bool {
	c.cards = append([]C(nil), cards...)
	return c.ctl.Replace(len(c.cards))
}

// Focused returns the focused card.
func (c *Carousel[C]) Focused() (C, bool) {
	var zero C
	i, ok := c.ctl.Focus()
	if !ok {
		return zero, false
	}
	return c.cards[i], true
}

// IndexOf returns the index of the card with the given ID, or -1.
func (c *Carousel[C]) IndexOf(id string) int {
	for i, card := range c.cards {
		if card.CardID() == id {
			return i
		}
	}
	return -1
}

// Slides derives the slide of every card for the current focus, in
// collection order.
func (c *Carousel[C]) Slides() []Slide[C] {
	visuals := c.ctl.Visuals(c.policy)
	if len(visuals) == 0 {
		return nil
	}
	out := make([]Slide[C], len(c.cards))
	for i, card := range c.cards {
		out[i] = Slide[C]{Card: card, Index: i, Visual: visuals[i]}
	}
	return out
}

// Indicators returns the indicator row for the current focus.
func (c *Carousel[C]) Indicators() []Indicator { return c.ctl.Indicators() }

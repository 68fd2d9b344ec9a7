package carousel

// State is the controller's coarse state.
type State int

const (
	StateEmpty State = iota
	StateIdle
)

// String returns the lowercase state name.
func (s State) String() string {
	if s == StateIdle {
		return "idle"
	}
	return "empty"
}

// Placement picks the initial focus for a collection of n > 0 cards.
type Placement func(n int) int

// Midpoint opens on the middle card, floor(n/2).
func Midpoint(n int) int { return n / 2 }

// First opens on the first card.
func First(int) int { return 0 }

// Option configures a Controller.
type Option func(*Controller)

// WithPlacement sets how the initial focus is chosen. The default is
// Midpoint.
func WithPlacement(p Placement) Option {
	return func(c *Controller) {
		if p != nil {
			c.place = p
		}
	}
}

// Controller owns the focused index of one carousel.
//
// Every operation replaces the focus in one assignment and reports whether it
// changed. A Controller is not safe for concurrent use.
type Controller struct {
	n     int
	focus int
	moved bool // a user-driven navigation has happened
	place Placement
}

// NewController returns a controller over n cards. With n == 0 it starts
// empty; otherwise it focuses the placement index.
func NewController(n int, opts ...Option) *Controller {
	c := &Controller{place: Midpoint}
	for _, opt := range opts {
		opt(c)
	}
	c.Replace(n)
	return c
}

// State returns StateEmpty when there are no cards, StateIdle otherwise.
func (c *Controller) State() State {
	if c.n == 0 {
		return StateEmpty
	}
	return StateIdle
}

// Len returns the collection size.
func (c *Controller) Len() int { return c.n }

// Focus returns the focused index. ok is false when the controller is empty.
func (c *Controller) Focus() (index int, ok bool) {
	if c.n == 0 {
		return 0, false
	}
	return c.focus, true
}

// Touched reports whether the focus has been moved by navigation since the
// controller was created or last emptied.
func (c *Controller) Touched() bool { return c.moved }

// Advance moves the focus one card forward, wrapping from the last card to
// the first. It does nothing when there are fewer than two cards.
func (c *Controller) Advance() bool {
	if c.n <= 1 {
		return false
	}
	return c.set((c.focus + 1) % c.n)
}

// Retreat moves the focus one card back, wrapping from the first card to the
// last. It does nothing when there are fewer than two cards.
func (c *Controller) Retreat() bool {
	if c.n <= 1 {
		return false
	}
	return c.set((c.focus - 1 + c.n) % c.n)
}

// JumpTo focuses card k. An index outside [0, Len()) is ignored, as is a jump
// to the card already in focus.
func (c *Controller) JumpTo(k int) bool {
	if k < 0 || k >= c.n || k == c.focus {
		return false
	}
	return c.set(k)
}

// Apply performs the navigation an intent asks for.
func (c *Controller) Apply(in Intent) bool {
	switch in {
	case IntentAdvance:
		return c.Advance()
	case IntentRetreat:
		return c.Retreat()
	}
	return false
}

// Replace re-targets the controller at a collection of n cards.
//
//   - n == 0 empties the controller.
//   - Coming from empty, or before any navigation, the focus is the
//     placement index for n.
//   - Otherwise the focus is kept when still in range and clamped to the
//     last card when not.
//
// It reports whether the focused index changed.
func (c *Controller) Replace(n int) bool {
	if n < 0 {
		n = 0
	}
	prev, hadFocus := c.Focus()

	next := 0
	switch {
	case n == 0:
		c.moved = false
	case !hadFocus || !c.moved:
		next = Wrap(c.place(n), n)
	case prev < n:
		next = prev
	default:
		next = n - 1
	}

	c.n, c.focus = n, next
	cur, ok := c.Focus()
	return ok != hadFocus || cur != prev
}

// Indicators projects the focus onto one indicator per card.
func (c *Controller) Indicators() []Indicator {
	focus, ok := c.Focus()
	if !ok {
		return nil
	}
	return Indicators(focus, c.n)
}

// Visuals returns the visual of every card for the current focus.
func (c *Controller) Visuals(p Policy) []Visual {
	focus, ok := c.Focus()
	if !ok {
		return nil
	}
	return p.DescribeAll(focus, c.n)
}

func (c *Controller) set(k int) bool {
	c.moved = true
	if k == c.focus {
		return false
	}
	c.focus = k
	return true
}

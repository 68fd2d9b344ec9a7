package carousel

import (
	"fmt"
	"math"
)

// DefaultThreshold is the horizontal displacement, in logical pixels, a drag
// must exceed before it counts as a navigation gesture.
const DefaultThreshold = 50.0

// Intent is a discrete navigation decision.
type Intent int

const (
	IntentNone Intent = iota
	IntentAdvance
	IntentRetreat
)

// String returns the lowercase intent name.
func (i Intent) String() string {
	switch i {
	case IntentAdvance:
		return "advance"
	case IntentRetreat:
		return "retreat"
	default:
		return "none"
	}
}

// InputSource identifies the device that produced a gesture.
type InputSource int

const (
	SourcePointer InputSource = iota
	SourceTouch
)

// String returns the lowercase source name.
func (s InputSource) String() string {
	if s == SourceTouch {
		return "touch"
	}
	return "pointer"
}

// ParseInputSource parses "pointer", "mouse" or "touch".
func ParseInputSource(s string) (InputSource, error) {
	switch s {
	case "", "pointer", "mouse":
		return SourcePointer, nil
	case "touch":
		return SourceTouch, nil
	}
	return SourcePointer, fmt.Errorf("unknown input source: %q", s)
}

// DragSession is the state of one press-drag-release gesture. The zero value
// is an inactive session.
type DragSession struct {
	Active  bool
	OriginX float64
	Source  InputSource
}

// Classify turns a horizontal displacement into an intent. A drag to the
// right reveals the previous card; a drag to the left reveals the next one.
// A non-positive threshold means DefaultThreshold.
func Classify(delta, threshold float64) Intent {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if math.Abs(delta) <= threshold {
		return IntentNone
	}
	if delta > 0 {
		return IntentRetreat
	}
	return IntentAdvance
}

// Recognizer converts start/end positions into intents. It holds at most one
// session; starting a new one replaces the old.
type Recognizer struct {
	threshold float64
	session   DragSession
}

// NewRecognizer returns a recognizer with the given threshold. A non-positive
// threshold means DefaultThreshold.
func NewRecognizer(threshold float64) *Recognizer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Recognizer{threshold: threshold}
}

// Threshold returns the displacement the recognizer requires.
func (r *Recognizer) Threshold() float64 { return r.threshold }

// Session returns a copy of the current session.
func (r *Recognizer) Session() DragSession { return r.session }

// Active reports whether a gesture is in progress.
func (r *Recognizer) Active() bool { return r.session.Active }

// Start opens a session at x.
func (r *Recognizer) Start(src InputSource, x float64) {
	r.session = DragSession{Active: true, OriginX: x, Source: src}
}

// Move accepts an intermediate position. Cards do not follow the pointer,
// so the position is not recorded.
func (r *Recognizer) Move(x float64) {}

// End closes the session at x and returns the resulting intent. Without an
// open session it returns IntentNone.
func (r *Recognizer) End(x float64) Intent {
	s := r.session
	r.session = DragSession{}
	if !s.Active {
		return IntentNone
	}
	return Classify(x-s.OriginX, r.threshold)
}

// Cancel drops the current session without producing an intent. It is safe
// to call when no session is open.
func (r *Recognizer) Cancel() {
	r.session = DragSession{}
}

// Recognize runs a complete gesture from start to end.
func (r *Recognizer) Recognize(src InputSource, startX, endX float64) Intent {
	r.Start(src, startX)
	return r.End(endX)
}

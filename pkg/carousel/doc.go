// Package carousel positions a small, wrap-around collection of cards around
// a focused card and turns drag gestures into navigation.
//
// # Overview
//
// The portfolio presents projects as a ring of cards: one card sits in the
// center at full size, its neighbors recede to the left and right on a
// shallow perspective arc, and cards further away fade out. The package is
// split into five small pieces that only ever flow one way:
//
//	cards ─▶ Controller (focus) ─▶ Policy (per-card Visual) ─▶ renderer
//	                ▲                                             │
//	                └──────────── Recognizer (Intent) ◀── pointer/touch
//
// # Circular Distance
//
// [Distance] returns the shortest signed offset of a card from the focused
// index on a ring of n cards, in the range (-⌈n/2⌉, ⌊n/2⌋]. When n is even
// the card exactly opposite the focus is always reported on the positive
// side, so every card gets a deterministic slot:
//
//	carousel.Distance(4, 0, 5) // -1
//	carousel.Distance(3, 0, 6) //  3, never -3
//
// [Offset] is the unsigned value before symmetrization and [Wrap] reduces any
// index into [0, n). All three return 0 for an empty ring.
//
// # Transform Policy
//
// [Policy.Describe] maps a distance to a [Visual]: translation, scale,
// opacity, Y rotation, blur, stacking order, whether the card accepts
// pointer input and which transition the renderer should animate. Cards are
// bucketed by |distance| (0, 1, 2, 3+). Only the focused card is
// interactable.
//
// A card sitting exactly opposite the focus changes sides as the focus moves
// past it. Animating its transform would slide it the long way around the
// ring, so [Crossing] cards are described with [TransitionFade] and zero
// opacity instead of [TransitionSlide].
//
// # Gestures
//
// A [Recognizer] tracks one [DragSession] at a time. [Recognizer.End]
// compares the release position with the press position and yields
// [IntentRetreat] for a rightward drag, [IntentAdvance] for a leftward drag,
// and [IntentNone] below the threshold. [Recognizer.Cancel] drops the session
// without an intent.
//
// # Controller
//
// A [Controller] owns the focused index of one carousel. It is either empty
// or idle on a focus. [Controller.Advance], [Controller.Retreat] and
// [Controller.JumpTo] replace the focus in a single step; [Controller.Replace]
// re-targets the controller at a collection of a different size, clamping
// the focus. The first non-empty collection opens on the midpoint card.
//
// [Carousel] binds a controller to an ordered slice of cards and derives
// [Slide] values (card, index, distance, visual) on every call. Nothing is
// cached between calls.
//
// # Concurrency
//
// Controllers and recognizers are not safe for concurrent use. Each
// carousel on screen (the main project ring, a detail view's image gallery)
// owns its own instance and drives it from a single goroutine.
package carousel

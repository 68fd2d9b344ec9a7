// Package markup writes HTML fragments for hand-built templ components.
package markup

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer keeps the first write error so fragments can be emitted without a
// check after each one.
type Writer struct {
	w   io.Writer
	err error
}

// New returns a Writer over w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Printf writes a fragment. A format without args is written verbatim.
func (m *Writer) Printf(format string, args ...any) {
	if m.err != nil {
		return
	}
	if len(args) == 0 {
		_, m.err = io.WriteString(m.w, format)
		return
	}
	_, m.err = fmt.Fprintf(m.w, format, args...)
}

// Render writes a nested component.
func (m *Writer) Render(ctx context.Context, c templ.Component) {
	if m.err != nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

// Err returns the first error seen.
func (m *Writer) Err() error { return m.err }

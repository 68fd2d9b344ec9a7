package markup

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
)

type failWriter struct{ n int }

func (f *failWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("disk full")
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	m := New(&buf)
	m.Printf(`<p class="%s">`, "x")
	m.Printf("<i>")
	m.Render(context.Background(), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<b>in</b>")
		return err
	}))
	m.Printf("</p>")
	if err := m.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if got, want := buf.String(), `<p class="x"><i><b>in</b></p>`; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriterStopsAfterError(t *testing.T) {
	fw := &failWriter{}
	m := New(fw)
	m.Printf("a")
	m.Printf("%d", 1)
	m.Render(context.Background(), templ.Raw("b"))
	if m.Err() == nil {
		t.Fatal("Err() = nil after failed write")
	}
	if fw.n != 1 {
		t.Errorf("writes = %d, want 1", fw.n)
	}
}

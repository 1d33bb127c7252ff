package logutils

import (
	"bytes"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// DeferredWriter holds log output in memory until Flush. Safe for concurrent
// use; tea commands log from their own goroutines.
type DeferredWriter struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	lines int
}

func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines += bytes.Count(p, []byte{'\n'})
	return d.buf.Write(p)
}

// Lines reports how many complete lines are held.
func (d *DeferredWriter) Lines() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lines
}

// Flush writes the held output to w and empties the buffer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lines = 0
	if d.buf.Len() == 0 {
		return nil
	}
	_, err := d.buf.WriteTo(w)
	return err
}

// Defer redirects l into human-readable lines held in memory, for use while
// the alt screen owns the terminal. The returned flush writes them to out,
// colored when out is a terminal.
func Defer(l zerolog.Logger, out io.Writer) (zerolog.Logger, func() error) {
	d := &DeferredWriter{}

	cw := ConsoleWriter(d)
	cw.NoColor = !isTerminal(out)

	return l.Output(cw), func() error { return d.Flush(out) }
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

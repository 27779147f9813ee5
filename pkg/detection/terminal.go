package detection

import (
	"io"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Terminal describes what a probe learned about a destination.
type Terminal struct {
	Interactive bool
	Width       int
}

type fder interface {
	Fd() uintptr
}

// ProbeTerminal inspects w once. Writers without a file descriptor (buffers,
// pipes wrapped in other writers) are reported as non-interactive.
func ProbeTerminal(w io.Writer) Terminal {
	f, ok := w.(fder)
	if !ok {
		return Terminal{}
	}
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return Terminal{}
	}

	t := Terminal{Interactive: true}
	if width, _, err := term.GetSize(int(fd)); err == nil {
		t.Width = width
	}
	return t
}

package console

import "github.com/charmbracelet/x/ansi"

// StripANSI removes escape sequences from s, for asserting on output from
// sinks a test does not control.
func StripANSI(s string) string { return ansi.Strip(s) }

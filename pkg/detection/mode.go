// Package detection decides whether diagnostic output is styled or plain.
//
// The decision is a pure function of an environment snapshot plus one
// injected boolean (is the destination an interactive terminal). The only
// code that touches a live terminal is ProbeTerminal, and callers pass its
// result in explicitly, so every precedence rule can be tested without a TTY.
package detection

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/sidechan/pkg/errors"
)

// Mode is the resolved output mode together with its provenance.
type Mode int

const (
	// AutoPlain is the default: no terminal, or an automation context.
	AutoPlain Mode = iota
	// AutoRich is chosen when the destination is an interactive terminal.
	AutoRich
	// ForcedPlain is requested explicitly (plain flag or NO_COLOR).
	ForcedPlain
	// ForcedRich is requested explicitly and wins over everything else.
	ForcedRich
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case AutoPlain:
		return "auto-plain"
	case AutoRich:
		return "auto-rich"
	case ForcedPlain:
		return "forced-plain"
	case ForcedRich:
		return "forced-rich"
	default:
		return "unknown"
	}
}

// IsRich reports whether the mode emits styling.
func (m Mode) IsRich() bool {
	return m == AutoRich || m == ForcedRich
}

// IsForced reports whether the mode came from an explicit request.
func (m Mode) IsForced() bool {
	return m == ForcedRich || m == ForcedPlain
}

// ParseMode parses a string into a Mode value
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto-plain", "plain", "":
		return AutoPlain, nil
	case "auto-rich", "rich":
		return AutoRich, nil
	case "forced-plain":
		return ForcedPlain, nil
	case "forced-rich":
		return ForcedRich, nil
	default:
		return AutoPlain, errors.Newf(errors.ErrInvalidInput, "unknown display mode: %s", s)
	}
}

// DisplayMode is the immutable result of detection. Reason names the signal
// that decided it, for diagnostics such as `sidechan detect`.
type DisplayMode struct {
	Mode   Mode
	Reason string
}

// IsRich reports whether output should carry styling.
func (d DisplayMode) IsRich() bool { return d.Mode.IsRich() }

func (d DisplayMode) String() string {
	if d.Reason == "" {
		return d.Mode.String()
	}
	return fmt.Sprintf("%s (%s)", d.Mode, d.Reason)
}

// Rich returns a forced rich mode with the given reason.
func Rich(reason string) DisplayMode { return DisplayMode{Mode: ForcedRich, Reason: reason} }

// Plain returns a forced plain mode with the given reason.
func Plain(reason string) DisplayMode { return DisplayMode{Mode: ForcedPlain, Reason: reason} }

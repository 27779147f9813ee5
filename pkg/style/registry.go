package style

import "sync/atomic"

// active holds the process-wide theme. Readers never lock; Install swaps the
// whole pointer so nobody can observe a half-updated palette.
var active atomic.Pointer[Theme]

// Current returns the active theme, initialising it to Default on first use.
func Current() *Theme {
	if t := active.Load(); t != nil {
		return t
	}
	active.CompareAndSwap(nil, defaultTheme)
	return active.Load()
}

// Install replaces the active theme. Passing nil restores Default. Intended
// for startup customisation and tests, not as a runtime toggle.
func Install(t *Theme) {
	if t == nil {
		t = defaultTheme
	}
	active.Store(t)
}

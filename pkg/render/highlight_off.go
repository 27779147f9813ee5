//go:build nohighlight

package render

// Highlighter colours source text by token. Highlight reports false when it
// cannot handle format, and callers fall back to another rendering.
type Highlighter interface {
	Highlight(format, source string) ([]Line, bool)
}

// DefaultHighlighter returns nil: this build has no highlighting.
func DefaultHighlighter() Highlighter { return nil }

// HighlightAvailable reports whether this build includes highlighting.
func HighlightAvailable() bool { return false }

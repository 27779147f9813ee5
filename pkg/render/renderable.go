// Package render holds the data-only widgets the console draws.
//
// A Renderable lays itself out once into lines of role-tagged segments.
// Styled and plain output are both encodings of those same lines: the plain
// form is the concatenated segment text, the styled form paints each
// segment. Nothing in this package performs I/O.
package render

import (
	"strings"

	"github.com/arthur-debert/sidechan/pkg/detection"
	"github.com/arthur-debert/sidechan/pkg/style"
)

// DefaultWidth is used when no width is declared.
const DefaultWidth = detection.DefaultWidth

// Renderable is a pure description of one diagnostic element.
type Renderable interface {
	Layout(ctx Context) []Line
}

// LayoutFunc adapts a function to the Renderable interface.
type LayoutFunc func(ctx Context) []Line

// Layout calls f.
func (f LayoutFunc) Layout(ctx Context) []Line { return f(ctx) }

// Context carries what a layout may depend on.
type Context struct {
	Width       int
	Theme       *style.Theme
	Highlighter Highlighter
}

// NewContext returns a context with defaults filled in.
func NewContext(theme *style.Theme, width int) Context {
	if theme == nil {
		theme = style.Current()
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return Context{Width: width, Theme: theme, Highlighter: DefaultHighlighter()}
}

// Glyphs returns the theme's glyph set.
func (c Context) Glyphs() style.Glyphs {
	if c.Theme == nil {
		return style.Current().Glyphs()
	}
	return c.Theme.Glyphs()
}

// WithWidth returns a copy of c laid out at width.
func (c Context) WithWidth(width int) Context {
	if width < 1 {
		width = 1
	}
	c.Width = width
	return c
}

// Block is a laid-out renderable ready to be encoded.
type Block struct {
	Lines []Line
	Mode  detection.DisplayMode
}

// Render lays r out exactly once. Encoding the result in either mode reads
// the same lines, so stripped styled output equals plain output except
// where a decoration stands in for cut title text.
func Render(r Renderable, mode detection.DisplayMode, theme *style.Theme, width int) Block {
	ctx := NewContext(theme, width)
	var lines []Line
	if r != nil {
		lines = r.Layout(ctx)
	}
	return Block{Lines: lines, Mode: mode}
}

// Plain returns the block as newline-terminated text without styling.
func (b Block) Plain() string {
	var out strings.Builder
	for _, l := range b.Lines {
		out.WriteString(l.Plain())
		out.WriteByte('\n')
	}
	return out.String()
}

// Styled returns the block with every segment painted.
func (b Block) Styled(p *style.Painter) string {
	var out strings.Builder
	for _, l := range b.Lines {
		for _, s := range l {
			out.WriteString(p.Paint(s.Role, s.Text))
		}
		out.WriteByte('\n')
	}
	return out.String()
}

// Encode returns the bytes for the block's mode.
func (b Block) Encode(p *style.Painter) string {
	if b.Mode.IsRich() && p != nil {
		return b.Styled(p)
	}
	return b.Plain()
}

// Texts returns each line as the block's mode shows it, without escapes.
func (b Block) Texts() []string {
	out := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		if b.Mode.IsRich() {
			out[i] = l.Text()
		} else {
			out[i] = l.Plain()
		}
	}
	return out
}

package render

import (
	"strings"

	"github.com/arthur-debert/sidechan/pkg/style"
	"github.com/mattn/go-runewidth"
)

// Segment is a run of text drawn with one role. A decoration is drawn
// only in styled output; plain output shows Plain in its place, at the
// same width.
type Segment struct {
	Role       style.Role
	Text       string
	Plain      string
	Decoration bool
}

// plain returns the segment's text in plain output.
func (s Segment) plain() string {
	if s.Decoration {
		return s.Plain
	}
	return s.Text
}

// Line is one output line. A Line never contains a newline.
type Line []Segment

// cells measures in terminal cells. East Asian ambiguous characters (box
// drawing, the ellipsis) count as one cell regardless of locale, so layout
// does not depend on the environment.
var cells = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// StringWidth returns the display width of s in terminal cells.
func StringWidth(s string) int { return cells.StringWidth(s) }

// Text returns the line's characters as styled output draws them,
// without escapes.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Plain returns the line as plain output writes it.
func (l Line) Plain() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.plain())
	}
	return b.String()
}

// Width returns the line's display width.
func (l Line) Width() int {
	w := 0
	for _, s := range l {
		w += cells.StringWidth(s.Text)
	}
	return w
}

// seg appends a segment, merging it into the previous one when the roles
// match. Empty text is dropped.
func (l Line) seg(role style.Role, text string) Line {
	if text == "" {
		return l
	}
	if n := len(l); n > 0 && l[n-1].Role == role && !l[n-1].Decoration {
		l[n-1].Text += text
		return l
	}
	return append(l, Segment{Role: role, Text: text})
}

// add appends s, keeping decorations intact.
func (l Line) add(s Segment) Line {
	if s.Decoration {
		return append(l, s)
	}
	return l.seg(s.Role, s.Text)
}

// clip appends s cut to at most width cells. When anything is cut, styled
// output marks the cut with ellipsis while plain output keeps the hard cut.
// Both forms have the same width.
func (l Line) clip(role style.Role, s string, width int, ellipsis string) Line {
	if width <= 0 {
		return l
	}
	if cells.StringWidth(s) <= width {
		return l.seg(role, s)
	}
	hard := cells.Truncate(s, width, "")
	ew := cells.StringWidth(ellipsis)
	if ew == 0 || ew >= width {
		return l.seg(role, hard)
	}
	kept := cells.Truncate(s, width-ew, "")
	rest := strings.TrimPrefix(hard, kept)
	mark := ellipsis
	if gap := cells.StringWidth(rest) - ew; gap > 0 {
		mark += strings.Repeat(" ", gap)
	} else if gap < 0 {
		rest += strings.Repeat(" ", -gap)
	}
	l = l.seg(role, kept)
	return append(l, Segment{Role: role, Text: mark, Plain: rest, Decoration: true})
}

// truncate shortens s to at most width cells, ending in ellipsis when
// anything was cut. A width too small for the ellipsis cuts without it.
func truncate(s string, width int, ellipsis string) string {
	if width <= 0 {
		return ""
	}
	if cells.StringWidth(s) <= width {
		return s
	}
	if cells.StringWidth(ellipsis) >= width {
		return cells.Truncate(s, width, "")
	}
	return cells.Truncate(s, width, ellipsis)
}

// truncateLine shortens l to width cells. The ellipsis takes the role of
// the segment it cuts into.
func truncateLine(l Line, width int, ellipsis string) Line {
	if l.Width() <= width {
		return l
	}
	if width <= 0 {
		return Line{}
	}
	ew := cells.StringWidth(ellipsis)
	if ew >= width {
		ellipsis, ew = "", 0
	}
	budget := width - ew
	out := make(Line, 0, len(l))
	for _, s := range l {
		sw := cells.StringWidth(s.Text)
		if sw <= budget {
			out = out.add(s)
			budget -= sw
			continue
		}
		if !s.Decoration {
			out = out.seg(s.Role, cells.Truncate(s.Text, budget, ""))
		}
		out = out.seg(s.Role, ellipsis)
		break
	}
	return out
}

// padLine right-pads l with spaces up to width cells.
func padLine(l Line, width int) Line {
	if gap := width - l.Width(); gap > 0 {
		return l.seg(style.RoleNone, strings.Repeat(" ", gap))
	}
	return l
}

// repeat fills width cells with glyph.
func repeat(glyph string, width int) string {
	gw := cells.StringWidth(glyph)
	if gw <= 0 || width <= 0 {
		return ""
	}
	return strings.Repeat(glyph, width/gw)
}

package render

import (
	"fmt"
	"math"

	"github.com/arthur-debert/sidechan/pkg/style"
)

// maxBarWidth caps the bar so wide terminals do not get a wall of blocks.
const maxBarWidth = 40

// Progress is a determinate bar or one frame of an indeterminate spinner.
// It draws a single frame; advancing it is the caller's business.
type Progress struct {
	Label         string
	Fraction      float64
	Indeterminate bool
	Tick          int
}

// NewProgress returns a bar. Fraction is clamped to [0, 1]; NaN counts as 0.
func NewProgress(label string, fraction float64) *Progress {
	return &Progress{Label: label, Fraction: fraction}
}

// NewSpinner returns the spinner frame for tick.
func NewSpinner(label string, tick int) *Progress {
	return &Progress{Label: label, Indeterminate: true, Tick: tick}
}

// Layout implements Renderable.
func (p *Progress) Layout(ctx Context) []Line {
	g := ctx.Glyphs()
	label := firstLine(p.Label)

	var l Line
	if p.Indeterminate {
		frame := "*"
		if n := len(g.Spinner); n > 0 {
			frame = g.Spinner[((p.Tick%n)+n)%n]
		}
		l = l.seg(style.RoleAccent, frame)
		if label != "" {
			l = l.seg(style.RoleNone, " ")
			l = l.seg(style.RoleText, label)
		}
		return []Line{truncateLine(l, ctx.Width, g.Ellipsis)}
	}

	f := clampFraction(p.Fraction)
	pct := fmt.Sprintf("%3d%%", int(math.Round(f*100)))

	avail := ctx.Width - StringWidth(pct) - 1
	if label != "" {
		avail -= StringWidth(label) + 1
	}
	bar := avail
	if bar > maxBarWidth {
		bar = maxBarWidth
	}
	if bar < 1 {
		bar = 1
	}
	full := int(math.Round(f * float64(bar)))

	if label != "" {
		l = l.seg(style.RoleText, label)
		l = l.seg(style.RoleNone, " ")
	}
	l = l.seg(style.RoleSuccess, repeat(g.BarFull, full))
	l = l.seg(style.RoleMuted, repeat(g.BarEmpty, bar-full))
	l = l.seg(style.RoleNone, " ")
	l = l.seg(style.RoleAccent, pct)
	return []Line{truncateLine(l, ctx.Width, g.Ellipsis)}
}

func clampFraction(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

package render

import (
	"strings"

	"github.com/arthur-debert/sidechan/pkg/style"
)

// Group stacks its children vertically.
type Group struct {
	Children []Renderable
}

// NewGroup returns a group owning children. Nil children are skipped.
func NewGroup(children ...Renderable) *Group {
	g := &Group{}
	for _, c := range children {
		if c != nil {
			g.Children = append(g.Children, c)
		}
	}
	return g
}

// Add appends a child.
func (g *Group) Add(r Renderable) *Group {
	if r != nil {
		g.Children = append(g.Children, r)
	}
	return g
}

// Layout implements Renderable.
func (g *Group) Layout(ctx Context) []Line {
	var lines []Line
	for _, c := range g.Children {
		lines = append(lines, c.Layout(ctx)...)
	}
	return lines
}

// Blank is an empty line.
var Blank Renderable = LayoutFunc(func(Context) []Line { return []Line{{}} })

// Indent shifts its child right by Cells spaces, laying it out that much
// narrower.
type Indent struct {
	Cells int
	Child Renderable
}

// NewIndent returns child indented by cells.
func NewIndent(cells int, child Renderable) *Indent {
	return &Indent{Cells: cells, Child: child}
}

// Layout implements Renderable.
func (in *Indent) Layout(ctx Context) []Line {
	if in.Child == nil {
		return nil
	}
	n := in.Cells
	if n < 0 {
		n = 0
	}
	if n > ctx.Width-1 {
		n = ctx.Width - 1
	}
	pad := strings.Repeat(" ", n)
	var lines []Line
	for _, l := range in.Child.Layout(ctx.WithWidth(ctx.Width - n)) {
		out := Line{}.seg(style.RoleNone, pad)
		for _, s := range l {
			out = out.add(s)
		}
		lines = append(lines, out)
	}
	return lines
}

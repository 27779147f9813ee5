package render

import "github.com/arthur-debert/sidechan/pkg/style"

// Panel draws its child inside a box. The child is laid out four cells
// narrower than the panel.
type Panel struct {
	Title  string
	Border style.Role
	Child  Renderable
}

// NewPanel returns a panel owning child.
func NewPanel(title string, border style.Role, child Renderable) *Panel {
	return &Panel{Title: title, Border: border, Child: child}
}

// minPanelWidth leaves one cell of content between the borders.
const minPanelWidth = 5

// Layout implements Renderable.
func (p *Panel) Layout(ctx Context) []Line {
	g := ctx.Glyphs()
	border := p.Border
	if border == style.RoleNone {
		border = style.RoleBorder
	}
	width := ctx.Width
	if width < minPanelWidth {
		width = minPanelWidth
	}
	inner := width - 4

	var top Line
	top = top.seg(border, g.TopLeft)
	title := firstLine(p.Title)
	if title != "" && width >= 8 {
		top = top.seg(border, g.Horizontal)
		top = top.seg(style.RoleNone, " ")
		before := top.Width()
		top = top.clip(style.RoleHeader, title, width-6, g.Ellipsis)
		shown := top.Width() - before
		top = top.seg(style.RoleNone, " ")
		top = top.seg(border, repeat(g.Horizontal, width-shown-5))
	} else {
		top = top.seg(border, repeat(g.Horizontal, width-2))
	}
	top = top.seg(border, g.TopRight)

	lines := []Line{top}
	if p.Child != nil {
		for _, l := range p.Child.Layout(ctx.WithWidth(inner)) {
			body := Line{}.seg(border, g.Vertical).seg(style.RoleNone, " ")
			content := padLine(truncateLine(l, inner, g.Ellipsis), inner)
			for _, s := range content {
				body = body.add(s)
			}
			body = body.seg(style.RoleNone, " ").seg(border, g.Vertical)
			lines = append(lines, body)
		}
	}

	bottom := Line{}.
		seg(border, g.BottomLeft).
		seg(border, repeat(g.Horizontal, width-2)).
		seg(border, g.BottomRight)
	return append(lines, bottom)
}

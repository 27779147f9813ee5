package render

import "github.com/arthur-debert/sidechan/pkg/style"

// Rule is a full-width horizontal line with an optional centred title.
type Rule struct {
	Title string
	Role  style.Role
}

// NewRule returns a rule. An empty title draws a bare line.
func NewRule(title string) *Rule {
	return &Rule{Title: title, Role: style.RoleBorder}
}

// Layout implements Renderable.
func (r *Rule) Layout(ctx Context) []Line {
	g := ctx.Glyphs()
	role := r.Role
	if role == style.RoleNone {
		role = style.RoleBorder
	}

	title := firstLine(r.Title)
	if title == "" || ctx.Width < 5 {
		return []Line{Line{}.seg(role, repeat(g.Horizontal, ctx.Width))}
	}

	head := Line{}.clip(style.RoleHeader, title, ctx.Width-4, g.Ellipsis)
	side := ctx.Width - head.Width() - 2
	left := side / 2
	right := side - left

	var l Line
	l = l.seg(role, repeat(g.Horizontal, left))
	l = l.seg(style.RoleNone, " ")
	for _, s := range head {
		l = l.add(s)
	}
	l = l.seg(style.RoleNone, " ")
	l = l.seg(role, repeat(g.Horizontal, right))
	return []Line{l}
}

// firstLine sanitizes s and keeps only its first line. Titles never wrap.
func firstLine(s string) string {
	s = Sanitize(s)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}

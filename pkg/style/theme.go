package style

import (
	"github.com/charmbracelet/lipgloss"
)

// ColorDef is an adaptive color: one value for light backgrounds and one for
// dark ones. Values are hex ("#3D9EFF") or ANSI numbers ("6").
type ColorDef struct {
	Light string `yaml:"light" toml:"light"`
	Dark  string `yaml:"dark" toml:"dark"`
}

// IsZero reports whether neither variant is set.
func (c ColorDef) IsZero() bool { return c.Light == "" && c.Dark == "" }

// Adaptive converts the definition to a lipgloss color.
func (c ColorDef) Adaptive() lipgloss.AdaptiveColor {
	light, dark := c.Light, c.Dark
	if light == "" {
		light = dark
	}
	if dark == "" {
		dark = light
	}
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// StyleDef describes how one role is drawn.
type StyleDef struct {
	Foreground ColorDef `yaml:"foreground,omitempty" toml:"foreground"`
	Background ColorDef `yaml:"background,omitempty" toml:"background"`
	Bold       bool     `yaml:"bold,omitempty" toml:"bold"`
	Italic     bool     `yaml:"italic,omitempty" toml:"italic"`
	Faint      bool     `yaml:"faint,omitempty" toml:"faint"`
	Underline  bool     `yaml:"underline,omitempty" toml:"underline"`
}

// Glyphs are the structural characters widgets draw with. They are part of
// the theme, not of the display mode, so plain and styled output contain
// the same characters.
type Glyphs struct {
	Horizontal  string
	Vertical    string
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
	Delimiter   string
	Ellipsis    string
	BarFull     string
	BarEmpty    string
	Branch      string
	LastBranch  string
	Pipe        string
	Check       string
	Cross       string
	Warn        string
	Info        string
	Pending     string
	Empty       string
	Cancel      string
	Spinner     []string
}

// Theme maps every Role to a StyleDef. A Theme is immutable once built;
// With and WithGlyphs return modified copies.
type Theme struct {
	name   string
	styles map[Role]StyleDef
	glyphs Glyphs
}

// NewTheme builds a theme. Roles missing from styles fall back to muted at
// lookup time.
func NewTheme(name string, styles map[Role]StyleDef, glyphs Glyphs) *Theme {
	t := &Theme{
		name:   name,
		styles: make(map[Role]StyleDef, len(styles)),
		glyphs: glyphs.clone(),
	}
	for role, def := range styles {
		t.styles[role] = def
	}
	return t
}

// Name returns the theme name.
func (t *Theme) Name() string { return t.name }

// Style returns the definition for role. Unknown roles fail closed to the
// muted style so a missing palette entry never breaks a render.
func (t *Theme) Style(role Role) StyleDef {
	if def, ok := t.styles[role]; ok {
		return def
	}
	return t.styles[RoleMuted]
}

// Glyphs returns a copy of the theme's glyph set.
func (t *Theme) Glyphs() Glyphs { return t.glyphs.clone() }

// With returns a copy of t with role redefined.
func (t *Theme) With(role Role, def StyleDef) *Theme {
	c := NewTheme(t.name, t.styles, t.glyphs)
	c.styles[role] = def
	return c
}

// WithGlyphs returns a copy of t using g.
func (t *Theme) WithGlyphs(g Glyphs) *Theme {
	return NewTheme(t.name, t.styles, g)
}

// WithName returns a copy of t renamed.
func (t *Theme) WithName(name string) *Theme {
	return NewTheme(name, t.styles, t.glyphs)
}

func (g Glyphs) clone() Glyphs {
	c := g
	c.Spinner = append([]string(nil), g.Spinner...)
	return c
}

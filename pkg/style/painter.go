package style

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/sidechan/pkg/errors"
)

// Intensity is the color depth used when styling is on.
type Intensity int

const (
	IntensityANSI256 Intensity = iota
	IntensityANSI
	IntensityTrueColor
)

// String returns the string representation of the intensity
func (i Intensity) String() string {
	switch i {
	case IntensityANSI:
		return "ansi"
	case IntensityANSI256:
		return "ansi256"
	case IntensityTrueColor:
		return "truecolor"
	default:
		return "unknown"
	}
}

// ParseIntensity parses a configuration value. Empty means ANSI256.
func ParseIntensity(s string) (Intensity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ansi256", "256":
		return IntensityANSI256, nil
	case "ansi", "16", "basic":
		return IntensityANSI, nil
	case "truecolor", "24bit", "rgb":
		return IntensityTrueColor, nil
	default:
		return IntensityANSI256, errors.Newf(errors.ErrInvalidInput, "unknown color intensity: %s", s)
	}
}

// Profile maps the intensity to a termenv color profile.
func (i Intensity) Profile() termenv.Profile {
	switch i {
	case IntensityANSI:
		return termenv.ANSI
	case IntensityTrueColor:
		return termenv.TrueColor
	default:
		return termenv.ANSI256
	}
}

// Painter turns role-tagged text into ANSI-styled text.
//
// The underlying lipgloss renderer is bound to io.Discard with an explicit
// color profile and background, so painting never queries a terminal and
// always emits escapes: the decision to style was already made upstream.
type Painter struct {
	styles map[Role]lipgloss.Style
	muted  lipgloss.Style
}

// NewPainter builds a painter for theme. All role styles are resolved
// eagerly, so a Painter is safe for concurrent use.
func NewPainter(theme *Theme, intensity Intensity, darkBackground bool) *Painter {
	if theme == nil {
		theme = Current()
	}
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(intensity.Profile())
	r.SetHasDarkBackground(darkBackground)

	p := &Painter{styles: make(map[Role]lipgloss.Style, len(Roles))}
	for _, role := range Roles {
		p.styles[role] = buildStyle(r, theme.Style(role))
	}
	p.muted = p.styles[RoleMuted]
	return p
}

func buildStyle(r *lipgloss.Renderer, def StyleDef) lipgloss.Style {
	s := r.NewStyle()
	if !def.Foreground.IsZero() {
		s = s.Foreground(def.Foreground.Adaptive())
	}
	if !def.Background.IsZero() {
		s = s.Background(def.Background.Adaptive())
	}
	if def.Bold {
		s = s.Bold(true)
	}
	if def.Italic {
		s = s.Italic(true)
	}
	if def.Faint {
		s = s.Faint(true)
	}
	if def.Underline {
		s = s.Underline(true)
	}
	return s
}

// Paint styles text for role. RoleNone and empty text pass through.
func (p *Painter) Paint(role Role, text string) string {
	if text == "" || role == RoleNone {
		return text
	}
	s, ok := p.styles[role]
	if !ok {
		s = p.muted
	}
	return s.Render(text)
}

package topics

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// GlamourRenderer uses the glamour library for rich markdown rendering.
// The style is chosen up front rather than detected, so rendering never
// queries the terminal.
type GlamourRenderer struct {
	Style string // Standard style name: "dark", "light", "ascii", "notty"
	Width int    // Word wrap width (0 = glamour default)
}

// NewGlamourRenderer creates a markdown renderer for a dark or light
// background.
func NewGlamourRenderer(darkBackground bool, width int) *GlamourRenderer {
	style := styles.LightStyle
	if darkBackground {
		style = styles.DarkStyle
	}
	return &GlamourRenderer{Style: style, Width: width}
}

// Render converts markdown to styled terminal output
func (r *GlamourRenderer) Render(content string, format string) string {
	// Only process markdown files
	if format != ".md" {
		return content
	}

	style := r.Style
	if style == "" {
		style = styles.NoTTYStyle
	}
	options := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		// Fallback to plain text on error
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

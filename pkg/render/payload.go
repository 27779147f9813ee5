package render

import (
	"strings"

	"github.com/arthur-debert/sidechan/pkg/errors"
	"github.com/arthur-debert/sidechan/pkg/style"
)

// Payload formats understood without a highlighter.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXML  = "xml"
)

// Payload shows a source document. When the context has a highlighter that
// knows the format, the source is shown highlighted. Otherwise it is parsed
// and shown as StructuredData, and if that fails too, as plain text.
type Payload struct {
	Title      string
	Format     string
	Source     string
	MaxDepth   int
	TruncateAt int
}

// NewPayload returns a payload widget.
func NewPayload(format, source string) *Payload {
	return &Payload{Format: strings.ToLower(format), Source: source}
}

// Structured parses the payload into a tree.
func (p *Payload) Structured() (*StructuredData, error) {
	var (
		d   *StructuredData
		err error
	)
	switch strings.ToLower(p.Format) {
	case FormatJSON:
		d, err = FromJSON(p.Title, []byte(p.Source))
	case FormatYAML, "yml":
		d, err = FromYAML(p.Title, []byte(p.Source))
	case FormatXML:
		d, err = FromXML(p.Title, []byte(p.Source))
	default:
		return nil, errors.Newf(errors.ErrPayloadParse, "no structured form for format %q", p.Format)
	}
	if err != nil {
		return nil, err
	}
	d.MaxDepth = p.MaxDepth
	d.TruncateAt = p.TruncateAt
	return d, nil
}

// Layout implements Renderable.
func (p *Payload) Layout(ctx Context) []Line {
	if ctx.Highlighter != nil {
		if body, ok := ctx.Highlighter.Highlight(p.Format, p.Source); ok {
			g := ctx.Glyphs()
			var lines []Line
			if title := firstLine(p.Title); title != "" {
				lines = append(lines, Line{}.clip(style.RoleHeader, title, ctx.Width, g.Ellipsis))
			}
			for _, l := range body {
				lines = append(lines, truncateLine(l, ctx.Width, g.Ellipsis))
			}
			return lines
		}
	}
	if d, err := p.Structured(); err == nil {
		return d.Layout(ctx)
	}
	var lines []Line
	if p.Title != "" {
		lines = append(lines, NewText(style.RoleHeader, firstLine(p.Title)).Layout(ctx)...)
	}
	return append(lines, NewText(style.RoleText, p.Source).Layout(ctx)...)
}

package display

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/sidechan/pkg/config"
	"github.com/arthur-debert/sidechan/pkg/render"
	"github.com/arthur-debert/sidechan/pkg/style"
)

// Logo width thresholds.
const (
	fullLogoWidth    = 50
	compactLogoWidth = 30
)

var logoFull = []string{
	"     _     _            _",
	" ___(_) __| | ___  ___| |__   __ _ _ __",
	"/ __| |/ _` |/ _ \\/ __| '_ \\ / _` | '_ \\",
	"\\__ \\ | (_| |  __/ (__| | | | (_| | | | |",
	"|___/_|\\__,_|\\___|\\___|_| |_|\\__,_|_| |_|",
}

const (
	logoName    = "sidechan"
	logoTagline = "diagnostic console"
	logoCompact = 28
)

// ServerInfo is what the banner announces.
type ServerInfo struct {
	Name        string
	Version     string
	Description string
	Transport   string

	Tools     int
	Resources int
	Prompts   int
}

// Banner is the startup announcement printed once before serving.
type Banner struct {
	Info  ServerInfo
	Style config.BannerStyle
}

// NewBanner returns a full banner for info. An empty transport is stdio.
func NewBanner(info ServerInfo, bannerStyle config.BannerStyle) *Banner {
	if info.Transport == "" {
		info.Transport = "stdio"
	}
	return &Banner{Info: info, Style: bannerStyle}
}

// Layout implements render.Renderable.
func (b *Banner) Layout(ctx render.Context) []render.Line {
	g := render.NewGroup()
	switch b.Style {
	case config.BannerNone:
		return nil
	case config.BannerMinimal:
		g.Add(b.summary())
		g.Add(b.ready(ctx.Glyphs()))
		return g.Layout(ctx)
	case config.BannerCompact:
	default:
		g.Add(Logo()).Add(render.Blank)
	}
	g.Add(b.infoPanel()).Add(render.Blank)
	g.Add(b.capabilities(ctx.Glyphs())).Add(render.Blank)
	g.Add(b.ready(ctx.Glyphs()))
	g.Add(render.NewRule(""))
	return g.Layout(ctx)
}

func (b *Banner) title() []style.Span {
	return []style.Span{
		{Role: style.RolePrimary, Text: b.Info.Name},
		{Text: " "},
		{Role: style.RoleMuted, Text: "v" + b.Info.Version},
	}
}

func (b *Banner) summary() render.Renderable {
	spans := b.title()
	spans = append(spans, style.Span{
		Role: style.RoleMuted,
		Text: fmt.Sprintf(" (%d tools, %d resources, %d prompts)", b.Info.Tools, b.Info.Resources, b.Info.Prompts),
	})
	return render.NewSpans(spans...)
}

func (b *Banner) infoPanel() render.Renderable {
	body := render.NewGroup(render.NewSpans(b.title()...))
	if b.Info.Description != "" {
		body.Add(render.NewText(style.RoleMuted, b.Info.Description))
	}
	body.Add(render.NewText(style.RoleMuted, "Model Context Protocol server"))
	return render.NewPanel("", style.RoleBorder, body)
}

func (b *Banner) capabilities(g style.Glyphs) render.Renderable {
	t := render.NewTable("Type", "Count", "Status")
	t.Title = "Capabilities"
	t.Markup = true
	for _, c := range []struct {
		name  string
		count int
	}{
		{"Tools", b.Info.Tools},
		{"Resources", b.Info.Resources},
		{"Prompts", b.Info.Prompts},
	} {
		t.AddRow(c.name, strconv.Itoa(c.count), capabilityStatus(c.count, g))
	}
	return t
}

func capabilityStatus(count int, g style.Glyphs) string {
	if count > 0 {
		return "[success]" + g.Check + " registered[/]"
	}
	return "[muted]" + g.Empty + " none[/]"
}

func (b *Banner) ready(g style.Glyphs) render.Renderable {
	return render.NewSpans(
		style.Span{Role: style.RoleSuccess, Text: g.Check},
		style.Span{Text: " Server ready on "},
		style.Span{Role: style.RoleAccent, Text: b.Info.Transport},
	)
}

// Logo draws the project logo sized to the available width: the full art
// from 50 cells, a boxed name from 30, the bare name below that.
func Logo() render.Renderable {
	return render.LayoutFunc(func(ctx render.Context) []render.Line {
		switch {
		case ctx.Width >= fullLogoWidth:
			var lines []render.Line
			for i, l := range logoFull {
				role := style.RolePrimary
				if i >= len(logoFull)/2+1 {
					role = style.RoleSecondary
				}
				lines = append(lines, render.Line{{Role: role, Text: l}})
			}
			return lines
		case ctx.Width >= compactLogoWidth:
			box := render.NewPanel("", style.RolePrimary, render.NewGroup(
				render.NewText(style.RolePrimary, logoName),
				render.NewText(style.RoleSecondary, logoTagline),
			))
			return box.Layout(ctx.WithWidth(logoCompact))
		default:
			return render.NewText(style.RolePrimary, logoName).Layout(ctx)
		}
	})
}

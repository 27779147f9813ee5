package display

import (
	"github.com/arthur-debert/sidechan/pkg/render"
	"github.com/arthur-debert/sidechan/pkg/style"
)

// Warning is a one-line warning notice.
func Warning(message string) render.Renderable {
	return render.LayoutFunc(func(ctx render.Context) []render.Line {
		return render.NewSpans(
			style.Span{Role: style.RoleWarning, Text: ctx.Glyphs().Warn + " Warning:"},
			style.Span{Text: " " + message},
		).Layout(ctx)
	})
}

// Info is a one-line informational notice.
func Info(message string) render.Renderable {
	return render.LayoutFunc(func(ctx render.Context) []render.Line {
		return render.NewSpans(
			style.Span{Role: style.RoleInfo, Text: ctx.Glyphs().Info},
			style.Span{Text: " " + message},
		).Layout(ctx)
	})
}

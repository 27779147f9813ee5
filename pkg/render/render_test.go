// pkg/render/render_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test layout of every widget and the styled/plain equivalence

package render_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/sidechan/pkg/detection"
	"github.com/arthur-debert/sidechan/pkg/render"
	"github.com/arthur-debert/sidechan/pkg/style"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	rich  = detection.Rich("test")
	plain = detection.Plain("test")
)

func texts(r render.Renderable, width int) []string {
	return render.Render(r, plain, style.Default(), width).Texts()
}

func sampleTable() *render.Table {
	return render.NewTable("Name", "Role").
		AddRow("alice", "admin").
		AddRow("bob", "dev").
		AddRow("carol", "ops")
}

func widgets() map[string]render.Renderable {
	return map[string]render.Renderable{
		"text":     render.NewText(style.RoleInfo, "the quick brown fox jumps over the lazy dog"),
		"markup":   render.NewMarkup("[success]ok[/success] server [key]ready[/]"),
		"rule":     render.NewRule("Section"),
		"bare":     render.NewRule(""),
		"panel":    render.NewPanel("Info", style.RolePrimary, render.NewText(style.RoleText, "a\nb\nc")),
		"table":    sampleTable(),
		"empty":    render.NewTable("Name", "Count"),
		"progress": render.NewProgress("indexing", 0.42),
		"spinner":  render.NewSpinner("waiting", 3),
		"data":     render.NewStructuredData("params", render.Node{Key: "a", Value: "1", Kind: render.KindNumber}),
		"group":    render.NewGroup(render.NewRule("x"), render.NewText(style.RoleError, "boom")),
		"payload":  render.NewPayload("json", `{"name":"echo","args":{"text":"hi"}}`),
	}
}

func TestFallbackEquivalence(t *testing.T) {
	painter := style.NewPainter(style.Default(), style.IntensityTrueColor, true)

	for name, r := range widgets() {
		t.Run(name, func(t *testing.T) {
			styled := render.Render(r, rich, style.Default(), 60)
			unstyled := render.Render(r, plain, style.Default(), 60)

			richOut := styled.Encode(painter)
			plainOut := unstyled.Encode(painter)

			assert.Equal(t, plainOut, ansi.Strip(richOut))
			assert.NotContains(t, plainOut, "\x1b")
			assert.NotEmpty(t, plainOut)
		})
	}
}

func TestRichOutputIsStyled(t *testing.T) {
	painter := style.NewPainter(style.Default(), style.IntensityANSI256, true)
	out := render.Render(render.NewText(style.RoleError, "boom"), rich, nil, 0).Encode(painter)
	assert.Contains(t, out, "\x1b[")
}

func TestIdempotence(t *testing.T) {
	painter := style.NewPainter(style.Default(), style.IntensityANSI, false)
	for name, r := range widgets() {
		t.Run(name, func(t *testing.T) {
			first := render.Render(r, rich, style.Default(), 50).Encode(painter)
			second := render.Render(r, rich, style.Default(), 50).Encode(painter)
			assert.Equal(t, first, second)
		})
	}
}

func TestTableThreeRowsTwoColumns(t *testing.T) {
	lines := texts(sampleTable(), 80)
	assert.Equal(t, []string{
		"Name  │ Role",
		"alice │ admin",
		"bob   │ dev",
		"carol │ ops",
	}, lines)
}

func TestTableEmptyRendersHeader(t *testing.T) {
	for _, mode := range []detection.DisplayMode{rich, plain} {
		b := render.Render(render.NewTable("Name", "Count"), mode, style.Default(), 0)
		require.Len(t, b.Lines, 1)
		assert.Equal(t, "Name │ Count\n", b.Plain())
	}
}

func TestTableClampsRows(t *testing.T) {
	tbl := render.NewTable("A", "B").
		AddRow("1").
		AddRow("1", "2", "3")
	assert.Equal(t, []string{"A │ B", "1 │ ", "1 │ 2"}, texts(tbl, 80))
}

func TestTableShrinksWidestColumn(t *testing.T) {
	tbl := render.NewTable("k", "v").AddRow("id", strings.Repeat("x", 30))
	lines := texts(tbl, 20)
	for _, l := range lines {
		assert.LessOrEqual(t, render.StringWidth(l), 20)
	}
	assert.Equal(t, "id │ "+strings.Repeat("x", 14)+"…", lines[1])
}

func TestTableMaxRows(t *testing.T) {
	tbl := sampleTable()
	tbl.MaxRows = 1
	assert.Equal(t, []string{"Name  │ Role", "alice │ admin", "… 2 more rows"}, texts(tbl, 80))
}

func TestTableMarkupCells(t *testing.T) {
	tbl := render.NewTable("Kind", "Status").AddRow("Tools", "[success]✓ registered[/]")
	tbl.Markup = true
	b := render.Render(tbl, plain, style.Default(), 80)
	assert.Equal(t, "Tools │ ✓ registered", b.Lines[1].Text())
	assert.Equal(t, style.RoleSuccess, b.Lines[1][len(b.Lines[1])-1].Role)
}

func TestRule(t *testing.T) {
	assert.Equal(t, []string{"──────── Hi ────────"}, texts(render.NewRule("Hi"), 20))
	assert.Equal(t, []string{strings.Repeat("─", 10)}, texts(render.NewRule(""), 10))
}

func TestTitleTruncation(t *testing.T) {
	t.Run("rule", func(t *testing.T) {
		r := render.NewRule("abcdefghijkl")
		assert.Equal(t, "─ abcdef ─\n", render.Render(r, plain, style.Default(), 10).Plain())
		assert.Equal(t, []string{"─ abcde… ─"}, render.Render(r, rich, style.Default(), 10).Texts())
	})

	t.Run("plain cuts, rich marks the cut", func(t *testing.T) {
		r := render.NewPanel(strings.Repeat("title ", 20), style.RoleBorder, nil)
		a := render.Render(r, rich, style.Default(), 30).Texts()
		b := render.Render(r, plain, style.Default(), 30).Texts()
		require.Len(t, b, len(a))
		for i := range a {
			assert.Equal(t, 30, render.StringWidth(a[i]))
			assert.Equal(t, 30, render.StringWidth(b[i]))
		}
		assert.Contains(t, a[0], "…")
		assert.NotContains(t, b[0], "…")
		assert.Equal(t, a[1:], b[1:])
	})

	t.Run("cut inside a panel keeps the decoration", func(t *testing.T) {
		table := render.NewTable("A")
		table.Title = "abcdefghijkl"
		r := render.NewPanel("", style.RoleBorder, table)
		assert.Equal(t, "│ abcdef │", render.Render(r, plain, style.Default(), 10).Texts()[1])
		assert.Equal(t, "│ abcde… │", render.Render(r, rich, style.Default(), 10).Texts()[1])
	})

	t.Run("short titles are untouched", func(t *testing.T) {
		r := render.NewRule("ab")
		assert.Equal(t,
			render.Render(r, rich, style.Default(), 10).Texts(),
			render.Render(r, plain, style.Default(), 10).Texts())
	})

	t.Run("ascii glyphs", func(t *testing.T) {
		theme := style.Default().WithGlyphs(style.ASCIIGlyphs)
		out := render.Render(render.NewRule("abcdefghijkl"), rich, theme, 10).Texts()
		assert.Equal(t, []string{"- abcde~ -"}, out)
	})
}

func TestPanel(t *testing.T) {
	p := render.NewPanel("T", style.RoleBorder, render.NewText(style.RoleText, "a\nb\nc"))
	assert.Equal(t, []string{
		"╭─ T ──────╮",
		"│ a        │",
		"│ b        │",
		"│ c        │",
		"╰──────────╯",
	}, texts(p, 12))
}

func TestTextWrap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  []string
	}{
		{"fits", "hello", 10, []string{"hello"}},
		{"word wrap", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"newlines", "a\n\nb", 10, []string{"a", "", "b"}},
		{"empty", "", 10, []string{""}},
		{"leading indent kept", "  x", 10, []string{"  x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, texts(render.NewText(style.RoleText, tt.input), tt.width))
		})
	}
}

func TestTextNoWrapTruncates(t *testing.T) {
	txt := render.NewText(style.RoleText, "abcdefghij")
	txt.NoWrap = true
	assert.Equal(t, []string{"abcd…"}, texts(txt, 5))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "a   b", render.Sanitize("a\tb"))
	assert.Equal(t, "xred", render.Sanitize("x\x1b[31mred\x1b[0m\r"))
	assert.Equal(t, "ding", render.Sanitize("di\ang"))
	assert.Equal(t, "a\nb", render.Sanitize("a\nb"))
}

func TestDefaultWidth(t *testing.T) {
	lines := texts(render.NewRule(""), 0)
	assert.Equal(t, render.DefaultWidth, render.StringWidth(lines[0]))
}

func TestProgress(t *testing.T) {
	t.Run("half", func(t *testing.T) {
		lines := texts(render.NewProgress("load", 0.5), 40)
		require.Len(t, lines, 1)
		assert.Equal(t, 40, render.StringWidth(lines[0]))
		assert.Equal(t, 15, strings.Count(lines[0], "█"))
		assert.True(t, strings.HasSuffix(lines[0], " 50%"))
	})

	t.Run("clamped", func(t *testing.T) {
		assert.True(t, strings.HasSuffix(texts(render.NewProgress("", 1.5), 40)[0], "100%"))
		assert.True(t, strings.HasSuffix(texts(render.NewProgress("", -1), 40)[0], "  0%"))
	})

	t.Run("nan", func(t *testing.T) {
		var zero float64
		nan := zero / zero
		assert.True(t, strings.HasSuffix(texts(render.NewProgress("", nan), 40)[0], "  0%"))
	})

	t.Run("spinner frames wrap", func(t *testing.T) {
		assert.Equal(t, []string{"⠙ wait"}, texts(render.NewSpinner("wait", 11), 40))
		assert.Equal(t, []string{"⠏ wait"}, texts(render.NewSpinner("wait", -1), 40))
	})
}

func TestGroupAndBlank(t *testing.T) {
	g := render.NewGroup(render.NewText(style.RoleText, "a"), nil, render.Blank, render.NewText(style.RoleText, "b"))
	assert.Equal(t, []string{"a", "", "b"}, texts(g, 80))
}

func TestRenderNil(t *testing.T) {
	b := render.Render(nil, plain, nil, 0)
	assert.Empty(t, b.Lines)
	assert.Equal(t, "", b.Plain())
}

func TestIndent(t *testing.T) {
	in := render.NewIndent(4, render.NewText(style.RoleText, "alpha beta gamma"))
	assert.Equal(t, []string{"    alpha", "    beta", "    gamma"}, texts(in, 12))
	assert.Nil(t, render.NewIndent(2, nil).Layout(render.NewContext(nil, 10)))
}

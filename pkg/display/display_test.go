// pkg/display/display_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None (layout only, in-memory capture)
// PURPOSE: Test status lines, the banner, capability tables and notices

package display_test

import (
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sidechan/pkg/config"
	"github.com/arthur-debert/sidechan/pkg/console"
	"github.com/arthur-debert/sidechan/pkg/detection"
	"github.com/arthur-debert/sidechan/pkg/display"
	"github.com/arthur-debert/sidechan/pkg/render"
	"github.com/arthur-debert/sidechan/pkg/style"
)

func lines(r render.Renderable, width int) []string {
	return render.Render(r, detection.Plain("test"), style.Default(), width).Texts()
}

func joined(r render.Renderable, width int) string {
	return strings.Join(lines(r, width), "\n")
}

// assertEquivalent prints r through a rich and a plain capture and checks
// that only the escapes differ.
func assertEquivalent(t *testing.T, r render.Renderable) {
	t.Helper()
	rich := console.NewCapture(detection.Rich("test"), console.WithWidth(80))
	plain := console.NewCapture(detection.Plain("test"), console.WithWidth(80))
	rich.Print(r)
	plain.Print(r)
	assert.Contains(t, rich.RawText(), "\x1b[")
	assert.Equal(t, plain.PlainText(), rich.PlainText())
	assert.Equal(t, plain.RawText(), plain.PlainText())
}

func TestOptionsFrom(t *testing.T) {
	opts := display.DefaultOptions()
	assert.Equal(t, config.BannerFull, opts.BannerStyle)
	assert.Equal(t, config.TrafficSummary, opts.Traffic)
	assert.True(t, opts.ShowCodes)
	assert.True(t, opts.ShowSuggestions)
	assert.False(t, opts.ShowBacktrace)
	assert.Equal(t, 100, opts.MaxRows)
	assert.Equal(t, 5, opts.MaxDepth)
	assert.Equal(t, 200, opts.TruncateAt)

	cfg := config.Default()
	cfg.Banner = false
	assert.Equal(t, config.BannerNone, display.OptionsFrom(cfg).BannerStyle)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0ms"},
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.50s"},
		{42 * time.Second, "42.00s"},
		{90 * time.Second, "1m 30s"},
		{125 * time.Minute, "125m 0s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, display.FormatDuration(tt.in), tt.in.String())
	}
}

func TestFormatLatency(t *testing.T) {
	assert.Equal(t, "500us", display.FormatLatency(500*time.Microsecond))
	assert.Equal(t, "1.5ms", display.FormatLatency(1500*time.Microsecond))
	assert.Equal(t, "2.50s", display.FormatLatency(2500*time.Millisecond))
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "null", display.FormatID(nil))
	assert.Equal(t, "7", display.FormatID(float64(7)))
	assert.Equal(t, "1.5", display.FormatID(1.5))
	assert.Equal(t, "abc", display.FormatID("abc"))
	assert.Equal(t, "3", display.FormatID(3))
}

func TestRequestLog(t *testing.T) {
	tests := []struct {
		name string
		log  *display.RequestLog
		want []string
	}{
		{
			name: "pending",
			log:  display.NewRequestLog("initialize", 1),
			want: []string{"◐ initialize #1"},
		},
		{
			name: "success",
			log:  display.NewRequestLog("tools/call", 7).Succeed(12 * time.Millisecond),
			want: []string{"✓ tools/call #7 12ms"},
		},
		{
			name: "error with detail",
			log:  display.NewRequestLog("tools/call", 7).Fail(1500*time.Millisecond, "boom"),
			want: []string{"✗ tools/call #7 1.50s", "  └─ boom"},
		},
		{
			name: "cancelled",
			log:  display.NewRequestLog("resources/read", "r-2").Cancel(5 * time.Millisecond),
			want: []string{"⊘ resources/read #r-2 5ms"},
		},
		{
			name: "notification has no id",
			log:  display.NewRequestLog("notifications/initialized", nil).Succeed(0),
			want: []string{"✓ notifications/initialized 0ms"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lines(tt.log, 80))
		})
	}
}

func TestRequestLogTruncatesToWidth(t *testing.T) {
	got := lines(display.NewRequestLog("tools/call", 1).Succeed(time.Millisecond), 10)
	require.Len(t, got, 1)
	assert.Equal(t, 10, render.StringWidth(got[0]))
	assert.True(t, strings.HasSuffix(got[0], "…"))
}

func TestStatusRoles(t *testing.T) {
	assert.Equal(t, style.RoleSuccess, display.StatusSuccess.Role())
	assert.Equal(t, style.RoleError, display.StatusError.Role())
	assert.Equal(t, style.RoleWarning, display.StatusCancelled.Role())
	assert.Equal(t, style.RoleInfo, display.StatusPending.Role())
	assert.Equal(t, "+", display.StatusSuccess.Icon(style.ASCIIGlyphs))
}

func sampleInfo() display.ServerInfo {
	return display.ServerInfo{
		Name:        "demo",
		Version:     "1.0.0",
		Description: "Example server",
		Tools:       2,
		Prompts:     1,
	}
}

func TestBannerStyles(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		assert.Empty(t, lines(display.NewBanner(sampleInfo(), config.BannerNone), 80))
	})

	t.Run("minimal", func(t *testing.T) {
		assert.Equal(t, []string{
			"demo v1.0.0 (2 tools, 0 resources, 1 prompts)",
			"✓ Server ready on stdio",
		}, lines(display.NewBanner(sampleInfo(), config.BannerMinimal), 80))
	})

	t.Run("compact has no logo", func(t *testing.T) {
		got := lines(display.NewBanner(sampleInfo(), config.BannerCompact), 80)
		require.NotEmpty(t, got)
		assert.True(t, strings.HasPrefix(got[0], "╭"))
		assert.NotContains(t, strings.Join(got, "\n"), "|___/")
	})

	t.Run("full", func(t *testing.T) {
		got := lines(display.NewBanner(sampleInfo(), config.BannerFull), 80)
		text := strings.Join(got, "\n")
		assert.Contains(t, text, "|___/")
		assert.Contains(t, text, "demo v1.0.0")
		assert.Contains(t, text, "Example server")
		assert.Contains(t, text, "Capabilities")
		assert.Contains(t, text, "✓ registered")
		assert.Contains(t, text, "○ none")
		assert.Contains(t, text, "✓ Server ready on stdio")
		assert.Equal(t, strings.Repeat("─", 80), got[len(got)-1])
	})

	t.Run("transport", func(t *testing.T) {
		info := sampleInfo()
		info.Transport = "sse"
		assert.Contains(t, joined(display.NewBanner(info, config.BannerMinimal), 80), "ready on sse")
	})
}

func TestLogoFollowsWidth(t *testing.T) {
	full := lines(display.Logo(), 60)
	assert.Len(t, full, 5)

	compact := lines(display.Logo(), 40)
	require.Len(t, compact, 4)
	assert.Equal(t, 28, render.StringWidth(compact[0]))
	assert.Contains(t, compact[1], "sidechan")

	assert.Equal(t, []string{"sidechan"}, lines(display.Logo(), 20))
}

func TestBannerSnapshots(t *testing.T) {
	tests := []struct {
		name  string
		style config.BannerStyle
		width int
		lines int
	}{
		{name: "banner_minimal", style: config.BannerMinimal, width: 80, lines: 2},
		{name: "banner_compact", style: config.BannerCompact, width: 60, lines: 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := console.NewCapture(detection.Plain("test"), console.WithWidth(tt.width))
			c.Print(display.NewBanner(sampleInfo(), tt.style))
			c.AssertLineCount(t, tt.lines)
			c.AssertSnapshot(t, tt.name)
			assert.True(t, c.Matches(`demo v1\.0\.0`))
		})
	}
}

func TestBannerEquivalentAcrossModes(t *testing.T) {
	assertEquivalent(t, display.NewBanner(sampleInfo(), config.BannerFull))
}

func TestToolsTable(t *testing.T) {
	t.Run("empty renders header", func(t *testing.T) {
		assert.Equal(t, []string{"Registered Tools", "Name │ Description"}, lines(display.ToolsTable(nil, 0), 80))
	})

	t.Run("rows", func(t *testing.T) {
		tools := []mcp.Tool{
			{Name: "echo", Description: "Echo the input"},
			{Name: "time"},
		}
		assert.Equal(t, []string{
			"Registered Tools",
			"Name │ Description",
			"echo │ Echo the input",
			"time │ -",
		}, lines(display.ToolsTable(tools, 0), 80))
	})

	t.Run("max rows", func(t *testing.T) {
		tools := []mcp.Tool{{Name: "a"}, {Name: "b"}, {Name: "c"}}
		got := lines(display.ToolsTable(tools, 1), 80)
		assert.Equal(t, "… 2 more rows", got[len(got)-1])
	})
}

func TestResourcesAndPromptsTables(t *testing.T) {
	resources := []mcp.Resource{{URI: "file:///notes.txt", Name: "notes", MIMEType: "text/plain"}}
	text := joined(display.ResourcesTable(resources, 0), 80)
	assert.Contains(t, text, "Registered Resources")
	assert.Contains(t, text, "file:///notes.txt │ notes │ text/plain")

	prompts := []mcp.Prompt{{
		Name:        "greet",
		Description: "Say hello",
		Arguments: []mcp.PromptArgument{
			{Name: "name", Required: true},
			{Name: "tone"},
		},
	}}
	text = joined(display.PromptsTable(prompts, 0), 80)
	assert.Contains(t, text, "greet │ name*, tone │ Say hello")
	assert.Equal(t, []string{"Registered Prompts", "Name │ Arguments │ Description"}, lines(display.PromptsTable(nil, 0), 80))
}

func TestNotices(t *testing.T) {
	assert.Equal(t, []string{"⚠ Warning: disk low"}, lines(display.Warning("disk low"), 80))
	assert.Equal(t, []string{"ℹ ready"}, lines(display.Info("ready"), 80))
	assertEquivalent(t, display.Warning("disk low"))
}

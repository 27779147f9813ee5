package cli

import (
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/sidechan/internal/mcpserver"
	"github.com/arthur-debert/sidechan/internal/version"
	"github.com/arthur-debert/sidechan/pkg/config"
	"github.com/arthur-debert/sidechan/pkg/display"
	"github.com/arthur-debert/sidechan/pkg/render"
	"github.com/arthur-debert/sidechan/pkg/style"
)

const (
	sampleJSON = `{"name": "echo", "arguments": {"text": "hello", "repeat": 2, "loud": false, "tags": ["a", "b"]}}`
	sampleYAML = "server:\n  name: sidechan\n  transports: [stdio]\n  limits:\n    requests: 100\n"
	sampleXML  = `<config><server name="sidechan"><port>8080</port></server></config>`

	sampleBacktrace = "goroutine 7 [running]:\n" +
		"main.handle(...)\n" +
		"\t/src/server/handler.go:42 +0x1d\n" +
		"main.main()\n" +
		"\t/src/server/main.go:12 +0x65\n"
)

// galleryPrinter prints one titled section per widget family.
type galleryPrinter struct {
	a *app
}

func (g galleryPrinter) section(title string, items ...render.Renderable) {
	g.a.sink.Rule(title)
	for _, r := range items {
		g.a.sink.Print(r)
	}
	g.a.sink.Newline()
}

func newGalleryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "gallery",
		Short:   MsgGalleryShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := galleryPrinter{a: a}
			srv := mcpserver.New(mcpserver.Options{
				Name:    "sidechan",
				Version: version.Version,
				Sink:    a.sink,
				Display: a.opts,
			})

			g.section("Text",
				render.NewMarkup("[primary]primary[/] [secondary]secondary[/] [accent]accent[/] [success]success[/] "+
					"[warning]warning[/] [error]error[/] [info]info[/] [muted]muted[/]"),
				render.NewText(style.RoleText, "Long text wraps at the console width and never splits a "+
					"word unless the word alone is wider than the line."),
			)

			g.section("Panels",
				render.NewPanel("Panel", style.RoleBorder, render.NewText(style.RoleText, "A bordered box with a title.")),
				display.NewBanner(srv.Info(), config.BannerMinimal),
			)

			g.section("Tables",
				display.ToolsTable(srv.Tools(), a.opts.MaxRows),
				display.ResourcesTable(srv.Resources(), a.opts.MaxRows),
				display.PromptsTable(srv.Prompts(), a.opts.MaxRows),
			)

			g.section("Progress",
				render.NewProgress("Indexing", 0.4),
				render.NewSpinner("Waiting for client", 3),
			)

			data := []render.Renderable{}
			if d, err := render.FromJSON("JSON", []byte(sampleJSON)); err == nil {
				d.MaxDepth = a.opts.MaxDepth
				data = append(data, d)
			}
			if d, err := render.FromYAML("YAML", []byte(sampleYAML)); err == nil {
				data = append(data, d)
			}
			if d, err := render.FromXML("XML", []byte(sampleXML)); err == nil {
				data = append(data, d)
			}
			payload := render.NewPayload(render.FormatJSON, sampleJSON)
			payload.Title = "Payload"
			payload.TruncateAt = a.opts.TruncateAt
			g.section("Structured data", append(data, payload)...)

			g.a.sink.Rule("Logging")
			a.bridge.Error("gallery", "an error record")
			a.bridge.Warn("gallery", "a warning record")
			a.bridge.Info("gallery", "an info record")
			a.bridge.Debug("gallery", "a debug record (shown with -v)")
			a.bridge.Trace("gallery", "a trace record (shown with -vv)")
			g.a.sink.Newline()

			g.section("Requests",
				display.NewRequestLog("tools/list", 1),
				display.NewRequestLog("tools/call", 2).Succeed(12*time.Millisecond),
				display.NewRequestLog("resources/read", "r-3").Fail(1500*time.Millisecond, "resource not found"),
				display.NewRequestLog("prompts/get", 4).Cancel(95*time.Second),
			)

			full := a.opts
			full.Traffic = config.TrafficFull
			traffic := display.NewTraffic(a.sink, full)
			params := json.RawMessage(`{"name":"echo","arguments":{"text":"hello"}}`)
			g.section("Traffic",
				traffic.RequestView("tools/call", 5, params),
				traffic.ResponseView(5, json.RawMessage(`{"content":[{"type":"text","text":"hello"}]}`), nil, 3*time.Millisecond),
				traffic.ResponseView(6, nil, display.NewRPCError(display.CodeInvalidParams, "missing text"), 800*time.Microsecond),
				traffic.PairView("tools/list", false, 2*time.Millisecond),
			)

			client := mcp.Implementation{Name: "Claude Desktop", Version: "1.2.3"}
			var caps mcp.ClientCapabilities
			_ = json.Unmarshal([]byte(`{"sampling":{},"roots":{"listChanged":true}}`), &caps)
			g.section("Clients",
				display.ClientConnected(client, &caps),
				display.ClientDetail(client, &caps),
				display.ClientDisconnected(client, "end of input"),
			)

			g.section("Errors",
				display.NewErrorReport(display.NewRPCError(display.CodeMethodNotFound, "method not found: tools/explode"), a.opts),
				display.NewErrorReport(
					display.NewRPCError(display.CodeToolExecution, "tool failed").WithData(map[string]any{"tool": "fail", "reason": "disk on fire"}),
					a.opts,
				),
				display.NewPanic("index out of range [3] with length 3", sampleBacktrace),
			)

			g.section("Notices",
				display.Warning("config file not found, using defaults"),
				display.Info("listening on stdio"),
			)
			a.sink.Flush()
			return nil
		},
	}
}

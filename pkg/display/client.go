package display

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/arthur-debert/sidechan/pkg/render"
	"github.com/arthur-debert/sidechan/pkg/style"
)

// ClientConnected announces a client that completed initialize. Caps may
// be nil; when it lists anything, a second line names the capabilities.
func ClientConnected(client mcp.Implementation, caps *mcp.ClientCapabilities) render.Renderable {
	out := render.NewGroup(render.NewSpans(
		style.Span{Role: style.RoleSuccess, Text: "Client Connected:"},
		style.Span{Text: " "},
		style.Span{Role: style.RoleAccent, Text: clientName(client)},
		style.Span{Role: style.RoleMuted, Text: versionSuffix(client.Version)},
	))
	if caps != nil {
		if list := FormatCapabilities(*caps); list != "" {
			out.Add(render.NewSpans(
				style.Span{Role: style.RoleMuted, Text: "  Capabilities:"},
				style.Span{Text: " " + list},
			))
		}
	}
	return out
}

// ClientDisconnected announces that a client went away, with an optional
// reason.
func ClientDisconnected(client mcp.Implementation, reason string) render.Renderable {
	spans := []style.Span{
		{Role: style.RoleWarning, Text: "Client Disconnected:"},
		{Text: " "},
		{Role: style.RoleAccent, Text: clientName(client)},
	}
	if reason != "" {
		spans = append(spans, style.Span{Role: style.RoleMuted, Text: " (" + reason + ")"})
	}
	return render.NewSpans(spans...)
}

// ClientDetail lists what is known about a client. The capabilities row
// is only present when caps is not nil.
func ClientDetail(client mcp.Implementation, caps *mcp.ClientCapabilities) *render.Table {
	t := render.NewTable("Property", "Value")
	t.Title = "Connected Client"
	t.AddRow("Name", clientName(client))
	t.AddRow("Version", orNone(client.Version))
	if caps != nil {
		list := FormatCapabilities(*caps)
		if list == "" {
			list = "none"
		}
		t.AddRow("Capabilities", list)
	}
	return t
}

// FormatCapabilities names the capabilities a client offers, comma
// separated. It returns "" when there are none.
func FormatCapabilities(caps mcp.ClientCapabilities) string {
	var items []string
	if caps.Sampling != nil {
		items = append(items, "sampling")
	}
	if caps.Roots != nil {
		if caps.Roots.ListChanged {
			items = append(items, "roots (list_changed)")
		} else {
			items = append(items, "roots")
		}
	}
	return strings.Join(items, ", ")
}

func clientName(client mcp.Implementation) string {
	if client.Name == "" {
		return "unknown client"
	}
	return client.Name
}

func versionSuffix(v string) string {
	if v == "" {
		return ""
	}
	return " v" + v
}

package display

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/sidechan/pkg/config"
	"github.com/arthur-debert/sidechan/pkg/console"
	"github.com/arthur-debert/sidechan/pkg/render"
	"github.com/arthur-debert/sidechan/pkg/style"
)

// Traffic prints protocol messages as they pass: requests as "->" lines,
// responses as "<-" lines. At summary verbosity only those header lines
// are printed; at full verbosity params, results and error data follow,
// truncated to TruncateAt characters. Silent prints nothing.
type Traffic struct {
	sink       *console.Sink
	verbosity  config.Traffic
	truncateAt int
}

// NewTraffic returns a traffic printer writing to sink.
func NewTraffic(sink *console.Sink, opts Options) *Traffic {
	return &Traffic{sink: sink, verbosity: opts.Traffic, truncateAt: opts.TruncateAt}
}

// Verbosity returns the configured verbosity.
func (t *Traffic) Verbosity() config.Traffic { return t.verbosity }

// Request prints an incoming request.
func (t *Traffic) Request(method string, id any, params json.RawMessage) {
	if r := t.RequestView(method, id, params); r != nil {
		t.sink.Print(r)
	}
}

// Response prints the reply to a request. A nil rpcErr is a success.
func (t *Traffic) Response(id any, result json.RawMessage, rpcErr *RPCError, elapsed time.Duration) {
	if r := t.ResponseView(id, result, rpcErr, elapsed); r != nil {
		t.sink.Print(r)
	}
}

// Pair prints a request and its outcome on one line.
func (t *Traffic) Pair(method string, failed bool, elapsed time.Duration) {
	if r := t.PairView(method, failed, elapsed); r != nil {
		t.sink.Print(r)
	}
}

// RequestView builds the request widget, or nil when silent.
func (t *Traffic) RequestView(method string, id any, params json.RawMessage) render.Renderable {
	if t.verbosity == config.TrafficSilent {
		return nil
	}
	out := render.NewGroup(render.NewSpans(
		style.Span{Role: style.RoleHeader, Text: "->"},
		style.Span{Text: " "},
		style.Span{Role: MethodRole(method), Text: method},
		style.Span{Role: style.RoleMuted, Text: " id=" + FormatID(id)},
	))
	if t.verbosity == config.TrafficFull && len(params) > 0 {
		out.Add(t.preview("Params", params))
	}
	return out
}

// ResponseView builds the response widget, or nil when silent.
func (t *Traffic) ResponseView(id any, result json.RawMessage, rpcErr *RPCError, elapsed time.Duration) render.Renderable {
	if t.verbosity == config.TrafficSilent {
		return nil
	}
	label, role := "OK", style.RoleSuccess
	if rpcErr != nil {
		label, role = "ERR", style.RoleError
	}
	spans := []style.Span{
		{Role: style.RoleHeader, Text: "<-"},
		{Text: " "},
		{Role: role, Text: label},
		{Role: style.RoleMuted, Text: " id=" + FormatID(id)},
	}
	if elapsed > 0 {
		spans = append(spans, style.Span{Role: style.RoleMuted, Text: " (" + FormatLatency(elapsed) + ")"})
	}
	out := render.NewGroup(render.NewSpans(spans...))
	if t.verbosity != config.TrafficFull {
		return out
	}
	switch {
	case rpcErr != nil:
		out.Add(render.NewIndent(2, render.NewSpans(
			style.Span{Role: style.RoleError, Text: fmt.Sprintf("Error %d", rpcErr.Code)},
			style.Span{Text: ": " + rpcErr.Message},
		)))
		if len(rpcErr.Data) > 0 {
			out.Add(render.NewIndent(2, render.NewText(style.RoleMuted, "Data: "+t.truncate(string(rpcErr.Data)))))
		}
	case len(result) > 0:
		out.Add(t.preview("Result", result))
	}
	return out
}

// PairView builds the one-line request summary, or nil when silent.
func (t *Traffic) PairView(method string, failed bool, elapsed time.Duration) render.Renderable {
	if t.verbosity == config.TrafficSilent {
		return nil
	}
	label, role := "OK", style.RoleSuccess
	if failed {
		label, role = "FAIL", style.RoleError
	}
	return render.NewSpans(
		style.Span{Role: MethodRole(method), Text: method},
		style.Span{Text: " "},
		style.Span{Role: role, Text: label},
		style.Span{Role: style.RoleMuted, Text: " " + FormatLatency(elapsed)},
	)
}

func (t *Traffic) preview(label string, raw json.RawMessage) render.Renderable {
	body := t.truncate(prettyJSON(raw))
	return render.NewGroup(
		render.NewIndent(2, render.NewText(style.RoleMuted, label+":")),
		render.NewIndent(4, render.NewText(style.RoleMuted, body)),
	)
}

// truncate cuts s to the configured number of characters and marks the
// cut with "...".
func (t *Traffic) truncate(s string) string {
	if t.truncateAt <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= t.truncateAt {
		return s
	}
	return string(runes[:t.truncateAt]) + "..."
}

// MethodRole colors a method by its family.
func MethodRole(method string) style.Role {
	switch {
	case strings.HasPrefix(method, "tools/"):
		return style.RolePrimary
	case strings.HasPrefix(method, "resources/"):
		return style.RoleAccent
	case strings.HasPrefix(method, "prompts/"):
		return style.RoleSecondary
	case strings.HasPrefix(method, "initialize"), strings.HasPrefix(method, "shutdown"):
		return style.RoleWarning
	default:
		return style.RoleText
	}
}

// FormatLatency renders d with more precision than FormatDuration:
// microseconds, milliseconds with one decimal, or seconds with two.
func FormatLatency(d time.Duration) string {
	us := d.Microseconds()
	switch {
	case us < 1000:
		return fmt.Sprintf("%dus", us)
	case us < 1_000_000:
		return fmt.Sprintf("%.1fms", float64(us)/1000)
	default:
		return fmt.Sprintf("%.2fs", float64(us)/1_000_000)
	}
}

package display

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/arthur-debert/sidechan/pkg/render"
	"github.com/arthur-debert/sidechan/pkg/style"
)

// JSON-RPC and MCP error codes.
const (
	CodeParseError       = -32700
	CodeInvalidRequest   = -32600
	CodeMethodNotFound   = -32601
	CodeInvalidParams    = -32602
	CodeInternalError    = -32603
	CodeToolExecution    = -32000
	CodeResourceNotFound = -32002
	CodeResourceDenied   = -32003
	CodePromptNotFound   = -32004
	CodeRequestCancelled = -32800
)

// RPCError is a JSON-RPC error object.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// NewRPCError returns an error with code and message.
func NewRPCError(code int, message string) *RPCError {
	return &RPCError{Code: code, Message: message}
}

// WithData attaches a JSON context value.
func (e *RPCError) WithData(v any) *RPCError {
	if raw, err := json.Marshal(v); err == nil {
		e.Data = raw
	}
	return e
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Category groups error codes by who is at fault.
type Category string

const (
	CategoryProtocol  Category = "protocol"
	CategoryInternal  Category = "internal"
	CategoryHandler   Category = "handler"
	CategoryCancelled Category = "cancelled"
	CategoryUnknown   Category = "unknown"
)

// Categorize maps a code to its category.
func Categorize(code int) Category {
	switch code {
	case CodeParseError, CodeInvalidRequest, CodeMethodNotFound, CodeInvalidParams:
		return CategoryProtocol
	case CodeInternalError:
		return CategoryInternal
	case CodeToolExecution, CodeResourceNotFound, CodeResourceDenied, CodePromptNotFound:
		return CategoryHandler
	case CodeRequestCancelled:
		return CategoryCancelled
	default:
		return CategoryUnknown
	}
}

// Label is the heading shown for the category.
func (c Category) Label() string {
	switch c {
	case CategoryProtocol:
		return "Protocol Error"
	case CategoryInternal:
		return "Internal Error"
	case CategoryHandler:
		return "Handler Error"
	case CategoryCancelled:
		return "Cancelled"
	default:
		return "Error"
	}
}

// Role returns the role the category is drawn with.
func (c Category) Role() style.Role {
	switch c {
	case CategoryHandler:
		return style.RoleWarning
	case CategoryCancelled:
		return style.RoleInfo
	default:
		return style.RoleError
	}
}

func (c Category) icon(g style.Glyphs) string {
	switch c {
	case CategoryHandler:
		return g.Warn
	case CategoryCancelled:
		return g.Cancel
	default:
		return g.Cross
	}
}

// Suggestions returns remediation hints for the codes that have them.
func Suggestions(code int) []string {
	switch code {
	case CodeMethodNotFound:
		return []string{
			"Verify the method name is correct",
			"Check that the handler is registered",
			"Run with --log-level=debug for more details",
		}
	case CodeParseError:
		return []string{
			"Validate the JSON structure",
			"Ensure text encoding is UTF-8",
		}
	case CodeResourceNotFound:
		return []string{
			"Verify the resource URI",
			"Check if the resource provider is active",
		}
	default:
		return nil
	}
}

// ErrorReport is a categorized error: a rule naming the category, a panel
// with the message and optional context, then numbered suggestions.
type ErrorReport struct {
	Err  *RPCError
	Opts Options
}

// NewErrorReport returns a report for err.
func NewErrorReport(err *RPCError, opts Options) *ErrorReport {
	return &ErrorReport{Err: err, Opts: opts}
}

// Layout implements render.Renderable.
func (r *ErrorReport) Layout(ctx render.Context) []render.Line {
	if r.Err == nil {
		return nil
	}
	g := ctx.Glyphs()
	cat := Categorize(r.Err.Code)

	header := render.NewRule(cat.icon(g) + " " + cat.Label())
	header.Role = cat.Role()

	body := render.NewGroup()
	if r.Opts.ShowCodes {
		body.Add(render.NewText(style.RoleHeader, strconv.Itoa(r.Err.Code))).Add(render.Blank)
	}
	body.Add(render.NewText(style.RoleText, r.Err.Message))
	if len(r.Err.Data) > 0 {
		ctxData := render.NewPayload(render.FormatJSON, prettyJSON(r.Err.Data))
		ctxData.MaxDepth = r.Opts.MaxDepth
		ctxData.TruncateAt = r.Opts.TruncateAt
		body.Add(render.Blank).Add(render.NewText(style.RoleMuted, "Context:")).Add(ctxData)
	}

	out := render.NewGroup(header, render.NewPanel("", style.RoleBorder, body))
	if hints := Suggestions(r.Err.Code); r.Opts.ShowSuggestions && len(hints) > 0 {
		out.Add(render.Blank).Add(render.NewText(style.RoleInfo, "Suggestions:"))
		for i, h := range hints {
			out.Add(render.NewIndent(2, render.NewSpans(
				style.Span{Role: style.RoleMuted, Text: fmt.Sprintf("%d. ", i+1)},
				style.Span{Role: style.RoleText, Text: h},
			)))
		}
	}
	return out.Layout(ctx)
}

// Panic reports a recovered panic with an optional goroutine backtrace.
type Panic struct {
	Message   string
	Backtrace string
}

// NewPanic returns a panic report. Pass an empty trace to omit it.
func NewPanic(message, backtrace string) *Panic {
	return &Panic{Message: message, Backtrace: backtrace}
}

// Layout implements render.Renderable.
func (p *Panic) Layout(ctx render.Context) []render.Line {
	out := render.NewGroup(render.NewPanel("PANIC", style.RoleError, render.NewText(style.RoleText, p.Message)))
	if p.Backtrace != "" {
		out.Add(render.Blank).Add(render.NewText(style.RoleHeader, "Backtrace:"))
		out.Add(render.NewIndent(2, render.FromBacktrace("", p.Backtrace)))
	}
	return out.Layout(ctx)
}

// prettyJSON indents raw, keeping key order. Input that is not JSON is
// returned unchanged.
func prettyJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

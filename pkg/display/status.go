package display

import (
	"fmt"
	"strconv"
	"time"

	"github.com/arthur-debert/sidechan/pkg/render"
	"github.com/arthur-debert/sidechan/pkg/style"
)

// Status is the lifecycle state of one request.
type Status string

const (
	StatusPending   Status = "pending"   // Received, no reply yet
	StatusSuccess   Status = "success"   // Replied with a result
	StatusError     Status = "error"     // Replied with an error
	StatusCancelled Status = "cancelled" // Cancelled before replying
)

// Role returns the role a status is drawn with.
func (s Status) Role() style.Role {
	switch s {
	case StatusSuccess:
		return style.RoleSuccess
	case StatusError:
		return style.RoleError
	case StatusCancelled:
		return style.RoleWarning
	default:
		return style.RoleInfo
	}
}

// Icon returns the glyph for the status.
func (s Status) Icon(g style.Glyphs) string {
	switch s {
	case StatusSuccess:
		return g.Check
	case StatusError:
		return g.Cross
	case StatusCancelled:
		return g.Cancel
	default:
		return g.Pending
	}
}

// RequestLog is a one-line summary of a handled request, followed by the
// error detail when there is one.
type RequestLog struct {
	Method   string
	ID       any
	Status   Status
	Duration time.Duration
	Err      string
}

// NewRequestLog returns a pending entry for method.
func NewRequestLog(method string, id any) *RequestLog {
	return &RequestLog{Method: method, ID: id, Status: StatusPending}
}

// Succeed marks the request done after d.
func (r *RequestLog) Succeed(d time.Duration) *RequestLog {
	r.Status, r.Duration = StatusSuccess, d
	return r
}

// Fail marks the request failed after d with msg.
func (r *RequestLog) Fail(d time.Duration, msg string) *RequestLog {
	r.Status, r.Duration, r.Err = StatusError, d, msg
	return r
}

// Cancel marks the request cancelled after d.
func (r *RequestLog) Cancel(d time.Duration) *RequestLog {
	r.Status, r.Duration = StatusCancelled, d
	return r
}

// Layout implements render.Renderable.
func (r *RequestLog) Layout(ctx render.Context) []render.Line {
	g := ctx.Glyphs()
	spans := []style.Span{
		{Role: r.Status.Role(), Text: r.Status.Icon(g)},
		{Text: " "},
		{Role: style.RoleKey, Text: r.Method},
	}
	if r.ID != nil {
		spans = append(spans, style.Span{Role: style.RoleMuted, Text: " #" + FormatID(r.ID)})
	}
	if r.Status != StatusPending {
		spans = append(spans, style.Span{Role: style.RoleMuted, Text: " " + FormatDuration(r.Duration)})
	}
	line := &render.Text{Spans: spans, NoWrap: true}

	if r.Status != StatusError || r.Err == "" {
		return line.Layout(ctx)
	}
	detail := render.NewIndent(2, render.NewSpans(
		style.Span{Role: style.RoleMuted, Text: g.LastBranch},
		style.Span{Role: style.RoleError, Text: r.Err},
	))
	return render.NewGroup(line, detail).Layout(ctx)
}

// FormatDuration renders d for status lines: milliseconds below a second,
// seconds with two decimals below a minute, minutes and seconds above.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	default:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}

// FormatID renders a JSON-RPC request id. JSON numbers decoded as float64
// print without a fraction.
func FormatID(id any) string {
	switch v := id.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

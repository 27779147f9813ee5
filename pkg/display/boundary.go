package display

import (
	stderrors "errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"github.com/arthur-debert/sidechan/pkg/console"
	"github.com/arthur-debert/sidechan/pkg/errors"
	"github.com/arthur-debert/sidechan/pkg/render"
	"github.com/arthur-debert/sidechan/pkg/style"
)

// Boundary renders errors that reach it and counts them. It never exits
// the process; callers decide what an error means.
type Boundary struct {
	sink  *console.Sink
	opts  Options
	count atomic.Int64
}

// NewBoundary returns a boundary printing to sink.
func NewBoundary(sink *console.Sink, opts Options) *Boundary {
	return &Boundary{sink: sink, opts: opts}
}

// Check renders err if it is non-nil and reports whether it was.
func (b *Boundary) Check(err error) bool {
	if err == nil {
		return false
	}
	b.Display(err)
	return true
}

// CheckContext is Check with a line describing what was being done. The
// line and the report are written as one block.
func (b *Boundary) CheckContext(err error, context string) bool {
	if err == nil {
		return false
	}
	b.count.Add(1)
	b.sink.Print(render.NewGroup(
		render.NewText(style.RoleMuted, "Context: "+context),
		NewErrorReport(AsRPCError(err), b.opts),
	))
	return true
}

// Display renders err unconditionally and counts it.
func (b *Boundary) Display(err error) {
	b.count.Add(1)
	b.sink.Print(NewErrorReport(AsRPCError(err), b.opts))
}

// Recover renders a panic in progress and swallows it. It must be
// deferred directly:
//
//	defer boundary.Recover()
func (b *Boundary) Recover() {
	r := recover()
	if r == nil {
		return
	}
	b.count.Add(1)
	trace := ""
	if b.opts.ShowBacktrace {
		trace = string(debug.Stack())
	}
	b.sink.Print(NewPanic(fmt.Sprint(r), trace))
}

// Count returns how many errors have been displayed.
func (b *Boundary) Count() int64 { return b.count.Load() }

// HasErrors reports whether any error has been displayed.
func (b *Boundary) HasErrors() bool { return b.Count() > 0 }

// Reset zeroes the counter.
func (b *Boundary) Reset() { b.count.Store(0) }

// AsRPCError converts err for display. RPC errors pass through; coded
// errors keep their code as context and map to the nearest RPC code;
// anything else is an internal error.
func AsRPCError(err error) *RPCError {
	if err == nil {
		return nil
	}
	var rpcErr *RPCError
	if stderrors.As(err, &rpcErr) {
		return rpcErr
	}
	code := errors.GetErrorCode(err)
	out := NewRPCError(rpcCode(code), err.Error())
	if code != errors.ErrUnknown {
		out.WithData(map[string]string{"code": string(code)})
	}
	return out
}

func rpcCode(code errors.ErrorCode) int {
	switch code {
	case errors.ErrInvalidInput, errors.ErrPayloadParse:
		return CodeInvalidParams
	case errors.ErrNotFound:
		return CodeResourceNotFound
	default:
		return CodeInternalError
	}
}

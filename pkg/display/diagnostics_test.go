// pkg/display/diagnostics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None (in-memory capture)
// PURPOSE: Test error categorization, error reports, panics and the error
// boundary

package display_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sidechan/pkg/console"
	"github.com/arthur-debert/sidechan/pkg/detection"
	"github.com/arthur-debert/sidechan/pkg/display"
	"github.com/arthur-debert/sidechan/pkg/errors"
	"github.com/arthur-debert/sidechan/pkg/style"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		code int
		want display.Category
	}{
		{display.CodeParseError, display.CategoryProtocol},
		{display.CodeInvalidRequest, display.CategoryProtocol},
		{display.CodeMethodNotFound, display.CategoryProtocol},
		{display.CodeInvalidParams, display.CategoryProtocol},
		{display.CodeInternalError, display.CategoryInternal},
		{display.CodeToolExecution, display.CategoryHandler},
		{display.CodeResourceNotFound, display.CategoryHandler},
		{display.CodeResourceDenied, display.CategoryHandler},
		{display.CodePromptNotFound, display.CategoryHandler},
		{display.CodeRequestCancelled, display.CategoryCancelled},
		{-1, display.CategoryUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, display.Categorize(tt.code), "code %d", tt.code)
	}

	assert.Equal(t, style.RoleWarning, display.CategoryHandler.Role())
	assert.Equal(t, style.RoleInfo, display.CategoryCancelled.Role())
	assert.Equal(t, style.RoleError, display.CategoryProtocol.Role())
	assert.Equal(t, "Error", display.CategoryUnknown.Label())
}

func TestSuggestions(t *testing.T) {
	assert.Len(t, display.Suggestions(display.CodeMethodNotFound), 3)
	assert.Len(t, display.Suggestions(display.CodeParseError), 2)
	assert.Len(t, display.Suggestions(display.CodeResourceNotFound), 2)
	assert.Nil(t, display.Suggestions(display.CodeInternalError))
}

func TestErrorReport(t *testing.T) {
	err := display.NewRPCError(display.CodeMethodNotFound, "Method not found: tools/cal")

	t.Run("full", func(t *testing.T) {
		got := lines(display.NewErrorReport(err, display.DefaultOptions()), 80)
		require.NotEmpty(t, got)
		assert.Contains(t, got[0], "✗ Protocol Error")
		text := strings.Join(got, "\n")
		assert.Contains(t, text, "-32601")
		assert.Contains(t, text, "Method not found: tools/cal")
		assert.Contains(t, text, "Suggestions:")
		assert.Contains(t, text, "  1. Verify the method name is correct")
		assert.Contains(t, text, "  3. Run with --log-level=debug for more details")
	})

	t.Run("without codes or suggestions", func(t *testing.T) {
		opts := display.DefaultOptions()
		opts.ShowCodes = false
		opts.ShowSuggestions = false
		text := joined(display.NewErrorReport(err, opts), 80)
		assert.NotContains(t, text, "-32601")
		assert.NotContains(t, text, "Suggestions:")
		assert.Contains(t, text, "Method not found")
	})

	t.Run("context data", func(t *testing.T) {
		withData := display.NewRPCError(display.CodeResourceNotFound, "no such resource").
			WithData(map[string]string{"uri": "file:///missing"})
		text := joined(display.NewErrorReport(withData, display.DefaultOptions()), 80)
		assert.Contains(t, text, "⚠ Handler Error")
		assert.Contains(t, text, "Context:")
		assert.Contains(t, text, "file:///missing")
		assert.Contains(t, text, "Verify the resource URI")
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Empty(t, lines(display.NewErrorReport(nil, display.DefaultOptions()), 80))
	})

	t.Run("equivalent across modes", func(t *testing.T) {
		assertEquivalent(t, display.NewErrorReport(err, display.DefaultOptions()))
	})

	t.Run("snapshot", func(t *testing.T) {
		c := console.NewCapture(detection.Plain("test"), console.WithWidth(60))
		c.Print(display.NewErrorReport(err, display.DefaultOptions()))
		c.AssertSnapshot(t, "error_report_method_not_found")
		assert.True(t, c.ContainsAll("Protocol Error", "-32601", "Suggestions:"))
	})
}

func TestPanic(t *testing.T) {
	trace := "goroutine 1 [running]:\nmain.main()\n\t/app/main.go:10 +0x1d\n"
	text := joined(display.NewPanic("boom", trace), 80)
	assert.Contains(t, text, "PANIC")
	assert.Contains(t, text, "boom")
	assert.Contains(t, text, "Backtrace:")
	assert.Contains(t, text, "main.main()")
	assert.Contains(t, text, "/app/main.go:10")
	assert.NotContains(t, text, "+0x1d")

	assert.NotContains(t, joined(display.NewPanic("boom", ""), 80), "Backtrace:")
}

func newPlainCapture() *console.Capture {
	return console.NewCapture(detection.Plain("test"), console.WithWidth(80))
}

func TestBoundaryCountsErrors(t *testing.T) {
	c := newPlainCapture()
	b := display.NewBoundary(c.Sink, display.DefaultOptions())

	assert.False(t, b.Check(nil))
	assert.False(t, b.HasErrors())
	assert.Empty(t, c.Lines())

	assert.True(t, b.Check(display.NewRPCError(display.CodeParseError, "bad json")))
	assert.Equal(t, int64(1), b.Count())
	assert.True(t, c.Contains("Protocol Error"))
	assert.True(t, c.Contains("Validate the JSON structure"))

	assert.True(t, b.CheckContext(errors.New(errors.ErrNotFound, "missing"), "loading notes"))
	assert.Equal(t, int64(2), b.Count())
	assert.True(t, c.Contains("Context: loading notes"))
	assert.True(t, c.Contains("Handler Error"))
	assert.True(t, c.Contains("NOT_FOUND"))

	// The context line and its report arrive in a single write.
	blocks := c.Blocks()
	last := blocks[len(blocks)-1]
	assert.Equal(t, "Context: loading notes", last[0].Plain)
	var text []string
	for _, l := range last {
		text = append(text, l.Plain)
	}
	assert.Contains(t, strings.Join(text, "\n"), "Handler Error")

	b.Reset()
	assert.Equal(t, int64(0), b.Count())
}

func TestBoundaryRecover(t *testing.T) {
	c := newPlainCapture()
	b := display.NewBoundary(c.Sink, display.DefaultOptions())

	assert.NotPanics(t, func() {
		defer b.Recover()
		panic("kaboom")
	})
	assert.Equal(t, int64(1), b.Count())
	assert.True(t, c.Contains("PANIC"))
	assert.True(t, c.Contains("kaboom"))
	assert.False(t, c.Contains("Backtrace:"))

	opts := display.DefaultOptions()
	opts.ShowBacktrace = true
	b = display.NewBoundary(c.Sink, opts)
	func() {
		defer b.Recover()
		panic("again")
	}()
	assert.True(t, c.Contains("Backtrace:"))
}

func TestAsRPCError(t *testing.T) {
	assert.Nil(t, display.AsRPCError(nil))

	orig := display.NewRPCError(display.CodeInvalidParams, "bad")
	assert.Same(t, orig, display.AsRPCError(fmt.Errorf("wrapped: %w", orig)))

	coded := display.AsRPCError(errors.New(errors.ErrInvalidInput, "nope"))
	assert.Equal(t, display.CodeInvalidParams, coded.Code)
	assert.JSONEq(t, `{"code":"INVALID_INPUT"}`, string(coded.Data))

	plain := display.AsRPCError(fmt.Errorf("disk full"))
	assert.Equal(t, display.CodeInternalError, plain.Code)
	assert.Equal(t, "disk full", plain.Message)
	assert.Empty(t, plain.Data)
}

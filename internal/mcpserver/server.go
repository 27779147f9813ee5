// Package mcpserver is a small Model Context Protocol server used to
// exercise the console: the protocol runs over stdin/stdout while every
// diagnostic goes to the sink.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/sidechan/pkg/console"
	"github.com/arthur-debert/sidechan/pkg/display"
	"github.com/arthur-debert/sidechan/pkg/logging"
)

const (
	// queueSize bounds the console work waiting behind a slow stderr.
	queueSize = 256

	// drainTimeout is how long Serve waits for queued console work after
	// the protocol stream ends.
	drainTimeout = time.Second
)

// Options configures a Server.
type Options struct {
	Name    string
	Version string
	Sink    *console.Sink
	Display display.Options

	// RequestLog prints a status line for every completed request.
	RequestLog bool

	// Mode describes the console decision; it is served as a resource.
	Mode string
}

// Server is the demo MCP server.
type Server struct {
	opts      Options
	mcp       *server.MCPServer
	tap       *tap
	logger    zerolog.Logger
	tools     []mcp.Tool
	resources []mcp.Resource
	prompts   []mcp.Prompt

	// queue is set while Serve runs.
	mu      sync.Mutex
	queue   *queue
	dropped int64
}

// New builds a server with its tools, resources and prompts registered.
func New(opts Options) *Server {
	if opts.Name == "" {
		opts.Name = "sidechan"
	}
	if opts.Sink == nil {
		opts.Sink = console.Default()
	}
	s := &Server{
		opts:   opts,
		tap:    newTap(opts.Sink, opts.Display, opts.RequestLog),
		logger: logging.GetLogger("mcp"),
	}

	hooks := &server.Hooks{}
	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		s.post(func() {
			s.logger.Warn().Str("method", string(method)).Err(err).Msg("request failed")
		})
	})

	s.mcp = server.NewMCPServer(
		opts.Name,
		opts.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
		server.WithHooks(hooks),
	)
	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// Info describes the server for the startup banner.
func (s *Server) Info() display.ServerInfo {
	return display.ServerInfo{
		Name:        s.opts.Name,
		Version:     s.opts.Version,
		Description: "Echo server with diagnostics on stderr",
		Transport:   "stdio",
		Tools:       len(s.tools),
		Resources:   len(s.resources),
		Prompts:     len(s.prompts),
	}
}

// Tools returns the registered tools.
func (s *Server) Tools() []mcp.Tool { return append([]mcp.Tool(nil), s.tools...) }

// Resources returns the registered resources.
func (s *Server) Resources() []mcp.Resource { return append([]mcp.Resource(nil), s.resources...) }

// Prompts returns the registered prompts.
func (s *Server) Prompts() []mcp.Prompt { return append([]mcp.Prompt(nil), s.prompts...) }

// Errors returns how many error reports have been printed.
func (s *Server) Errors() int64 { return s.tap.Errors() }

// Dropped returns how many console updates were discarded because the
// diagnostic stream could not keep up.
func (s *Server) Dropped() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue != nil {
		return s.dropped + s.queue.Dropped()
	}
	return s.dropped
}

// post runs fn on the console queue while Serve runs, and inline
// otherwise.
func (s *Server) post(fn func()) {
	s.mu.Lock()
	q := s.queue
	s.mu.Unlock()
	if q == nil {
		fn()
		return
	}
	q.post(fn)
}

// Serve speaks the protocol over in and out until ctx is done or in is
// exhausted. Only protocol messages are written to out. Console output
// happens on a separate goroutine, so a blocked stderr never delays a
// reply.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	q := newQueue(queueSize)
	s.mu.Lock()
	s.queue = q
	s.mu.Unlock()

	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(stdlog.New(queuedWriter{s: s}, "", 0))

	s.post(func() { s.logger.Info().Str("transport", "stdio").Msg("serving") })
	err := stdio.Listen(ctx,
		&lineReader{r: in, fn: q.line(s.tap.inbound)},
		&lineWriter{w: out, fn: q.line(s.tap.outbound)},
	)

	reason := "end of input"
	switch {
	case ctx.Err() != nil:
		reason = "server stopped"
	case err != nil:
		reason = err.Error()
	}
	q.post(func() { s.tap.disconnected(reason) })

	s.mu.Lock()
	s.queue = nil
	s.mu.Unlock()
	q.close(drainTimeout)

	s.mu.Lock()
	s.dropped += q.Dropped()
	s.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio transport: %w", err)
	}
	return nil
}

// queuedWriter sends the transport's own error log through the console
// queue.
type queuedWriter struct {
	s *Server
}

func (w queuedWriter) Write(p []byte) (int, error) {
	msg := strings.TrimSpace(string(p))
	w.s.post(func() { w.s.logger.Error().Str("transport", "stdio").Msg(msg) })
	return len(p), nil
}

// Handle processes one raw message and returns the encoded reply, or nil
// for a notification. It goes through the same tap as Serve.
func (s *Server) Handle(ctx context.Context, raw []byte) []byte {
	s.tap.inbound(raw)
	reply := s.mcp.HandleMessage(ctx, json.RawMessage(raw))
	if reply == nil {
		return nil
	}
	out, err := json.Marshal(reply)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode reply")
		return nil
	}
	s.tap.outbound(out)
	return out
}

func (s *Server) registerTools() {
	echo := mcp.NewTool("echo",
		mcp.WithDescription("Return the given text"),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to echo")),
	)
	s.addTool(echo, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	})

	upper := mcp.NewTool("shout",
		mcp.WithDescription("Return the given text in upper case"),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to shout")),
	)
	s.addTool(upper, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(strings.ToUpper(text)), nil
	})

	now := mcp.NewTool("time",
		mcp.WithDescription("Return the server time in RFC 3339 format"),
	)
	s.addTool(now, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(time.Now().UTC().Format(time.RFC3339)), nil
	})

	fail := mcp.NewTool("fail",
		mcp.WithDescription("Always fail, to show error reporting"),
		mcp.WithString("reason", mcp.Description("Failure message")),
	)
	s.addTool(fail, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reason := "requested failure"
		if r, ok := req.GetArguments()["reason"].(string); ok && r != "" {
			reason = r
		}
		return nil, fmt.Errorf("%s", reason)
	})
}

func (s *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.tools = append(s.tools, tool)
	s.mcp.AddTool(tool, handler)
}

func (s *Server) registerResources() {
	mode := mcp.NewResource("sidechan://console/mode", "console-mode",
		mcp.WithResourceDescription("How the diagnostic console decided to render"),
		mcp.WithMIMEType("text/plain"),
	)
	s.resources = append(s.resources, mode)
	s.mcp.AddResource(mode, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "text/plain", Text: s.opts.Mode},
		}, nil
	})
}

func (s *Server) registerPrompts() {
	diagnose := mcp.NewPrompt("diagnose",
		mcp.WithPromptDescription("Ask for help with an error message"),
		mcp.WithArgument("error", mcp.ArgumentDescription("The error text"), mcp.RequiredArgument()),
	)
	s.prompts = append(s.prompts, diagnose)
	s.mcp.AddPrompt(diagnose, func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		text := req.Params.Arguments["error"]
		return mcp.NewGetPromptResult("Diagnose an error", []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent("Explain this error and how to fix it:\n"+text)),
		}), nil
	})
}

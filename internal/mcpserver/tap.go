package mcpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/arthur-debert/sidechan/pkg/config"
	"github.com/arthur-debert/sidechan/pkg/console"
	"github.com/arthur-debert/sidechan/pkg/display"
)

// envelope is the part of a JSON-RPC message the tap cares about.
type envelope struct {
	ID     json.RawMessage    `json:"id,omitempty"`
	Method string             `json:"method,omitempty"`
	Params json.RawMessage    `json:"params,omitempty"`
	Result json.RawMessage    `json:"result,omitempty"`
	Error  *display.RPCError `json:"error,omitempty"`
}

func (e envelope) id() any {
	if len(e.ID) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(e.ID, &v); err != nil {
		return string(e.ID)
	}
	return v
}

// initializeParams is the part of an initialize request the console shows.
type initializeParams struct {
	ClientInfo   mcp.Implementation     `json:"clientInfo"`
	Capabilities mcp.ClientCapabilities `json:"capabilities"`
}

type inflight struct {
	method  string
	started time.Time
}

// tap observes protocol lines on their way in and out and reports them on
// the diagnostic sink. It never alters the bytes it sees.
type tap struct {
	sink       *console.Sink
	traffic    *display.Traffic
	boundary   *display.Boundary
	requestLog bool
	clock      func() time.Time

	mu      sync.Mutex
	pending map[string]inflight
	client  *mcp.Implementation
}

func newTap(sink *console.Sink, opts display.Options, requestLog bool) *tap {
	return &tap{
		sink:       sink,
		traffic:    display.NewTraffic(sink, opts),
		boundary:   display.NewBoundary(sink, opts),
		requestLog: requestLog,
		clock:      time.Now,
		pending:    make(map[string]inflight),
	}
}

// inbound handles one line read from the client.
func (t *tap) inbound(line []byte) {
	var msg envelope
	if err := json.Unmarshal(line, &msg); err != nil {
		t.boundary.Display(display.NewRPCError(display.CodeParseError, "unreadable message from client"))
		return
	}
	if msg.Method == "" {
		return
	}
	id := msg.id()
	t.traffic.Request(msg.Method, id, msg.Params)
	if msg.Method == string(mcp.MethodInitialize) {
		t.connected(msg.Params)
	}
	if id == nil {
		return
	}
	t.mu.Lock()
	t.pending[display.FormatID(id)] = inflight{method: msg.Method, started: t.clock()}
	t.mu.Unlock()
}

// outbound handles one line written to the client.
func (t *tap) outbound(line []byte) {
	var msg envelope
	if err := json.Unmarshal(line, &msg); err != nil || msg.Method != "" {
		return
	}
	id := msg.id()
	key := display.FormatID(id)

	t.mu.Lock()
	req, ok := t.pending[key]
	delete(t.pending, key)
	t.mu.Unlock()

	var elapsed time.Duration
	if ok {
		elapsed = t.clock().Sub(req.started)
	}
	t.traffic.Response(id, msg.Result, msg.Error, elapsed)

	if t.requestLog && ok {
		entry := display.NewRequestLog(req.method, id)
		if msg.Error != nil {
			entry.Fail(elapsed, msg.Error.Message)
		} else {
			entry.Succeed(elapsed)
		}
		t.sink.Print(entry)
	}
	if msg.Error != nil && t.traffic.Verbosity() != config.TrafficSilent {
		t.boundary.Display(msg.Error)
	}
}

// connected records the client named in an initialize request and
// announces it.
func (t *tap) connected(raw json.RawMessage) {
	var params initializeParams
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &params); err != nil {
			return
		}
	}
	t.mu.Lock()
	client := params.ClientInfo
	t.client = &client
	t.mu.Unlock()

	switch t.traffic.Verbosity() {
	case config.TrafficSilent:
		return
	case config.TrafficFull:
		t.sink.Print(display.ClientDetail(client, &params.Capabilities))
	default:
		t.sink.Print(display.ClientConnected(client, &params.Capabilities))
	}
}

// disconnected announces that the client went away, if one had connected.
func (t *tap) disconnected(reason string) {
	t.mu.Lock()
	client := t.client
	t.client = nil
	t.mu.Unlock()
	if client == nil || t.traffic.Verbosity() == config.TrafficSilent {
		return
	}
	t.sink.Print(display.ClientDisconnected(*client, reason))
}

// Errors returns how many error reports the tap has printed.
func (t *tap) Errors() int64 { return t.boundary.Count() }

// queue runs console work on its own goroutine so a slow or blocked
// diagnostic stream never holds up protocol reads and writes. When the
// queue is full, work is dropped and counted.
type queue struct {
	mu      sync.Mutex
	closed  bool
	work    chan func()
	done    chan struct{}
	dropped atomic.Int64
}

func newQueue(size int) *queue {
	q := &queue{work: make(chan func(), size), done: make(chan struct{})}
	go func() {
		defer close(q.done)
		for fn := range q.work {
			fn()
		}
	}()
	return q
}

// post schedules fn without waiting. It reports whether fn was queued.
func (q *queue) post(fn func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.dropped.Add(1)
		return false
	}
	select {
	case q.work <- fn:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// line returns a callback that copies each line and posts fn for it.
func (q *queue) line(fn func([]byte)) func([]byte) {
	return func(b []byte) {
		cp := append([]byte(nil), b...)
		q.post(func() { fn(cp) })
	}
}

// close stops accepting work and waits up to wait for queued work to
// finish.
func (q *queue) close(wait time.Duration) {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.work)
	}
	q.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-q.done:
	case <-timer.C:
	}
}

// Dropped returns how many pieces of work were discarded.
func (q *queue) Dropped() int64 { return q.dropped.Load() }

// lineReader calls fn with every complete line that passes through r.
type lineReader struct {
	r   io.Reader
	fn  func([]byte)
	buf []byte
}

func (l *lineReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	if n > 0 {
		l.buf = splitLines(append(l.buf, p[:n]...), l.fn)
	}
	return n, err
}

// lineWriter calls fn with every complete line written through it.
type lineWriter struct {
	w   io.Writer
	fn  func([]byte)
	mu  sync.Mutex
	buf []byte
}

func (l *lineWriter) Write(p []byte) (int, error) {
	n, err := l.w.Write(p)
	l.mu.Lock()
	l.buf = splitLines(append(l.buf, p[:n]...), l.fn)
	l.mu.Unlock()
	return n, err
}

// splitLines hands each newline-terminated line in buf to fn and returns
// the unterminated rest.
func splitLines(buf []byte, fn func([]byte)) []byte {
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			return buf
		}
		if line := bytes.TrimSpace(buf[:i]); len(line) > 0 {
			fn(line)
		}
		buf = buf[i+1:]
	}
}

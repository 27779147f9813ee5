package console

import (
	"strings"
	"sync"

	"github.com/arthur-debert/sidechan/pkg/detection"
)

// CapturedLine is one line of a captured block.
type CapturedLine struct {
	Block  int    // sequential number of the write that produced the line
	Index  int    // position of the line inside its block
	Raw    string // bytes as written, escapes included
	Plain  string // Raw without escapes
	Styled bool   // whether Raw carried any escapes
}

// memory is a destination that records each Write as one block.
type memory struct {
	mu     sync.Mutex
	lines  []CapturedLine
	blocks int
}

func (m *memory) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	parts := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")

	m.mu.Lock()
	defer m.mu.Unlock()
	block := m.blocks
	m.blocks++
	for i, raw := range parts {
		plain := StripANSI(raw)
		m.lines = append(m.lines, CapturedLine{
			Block:  block,
			Index:  i,
			Raw:    raw,
			Plain:  plain,
			Styled: plain != raw,
		})
	}
	return len(p), nil
}

// Capture is a Sink that writes to memory. It goes through the same code
// as a sink over a real stream; only the destination differs.
type Capture struct {
	*Sink
	mem *memory
}

// NewCapture returns a capturing sink in mode. Unless overridden by opts,
// it uses an empty environment and the default width.
func NewCapture(mode detection.DisplayMode, opts ...Option) *Capture {
	mem := &memory{}
	base := []Option{WithMode(mode), WithEnv(detection.Env{})}
	return &Capture{Sink: New(mem, append(base, opts...)...), mem: mem}
}

// Lines returns every captured line in write order.
func (c *Capture) Lines() []CapturedLine {
	c.mem.mu.Lock()
	defer c.mem.mu.Unlock()
	return append([]CapturedLine(nil), c.mem.lines...)
}

// Blocks returns the captured lines grouped by the write that produced
// them.
func (c *Capture) Blocks() [][]CapturedLine {
	var blocks [][]CapturedLine
	for _, l := range c.Lines() {
		if l.Index == 0 {
			blocks = append(blocks, nil)
		}
		last := len(blocks) - 1
		blocks[last] = append(blocks[last], l)
	}
	return blocks
}

// PlainText returns the captured output without escapes, one line per
// captured line.
func (c *Capture) PlainText() string {
	lines := c.Lines()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Plain
	}
	return strings.Join(out, "\n")
}

// RawText returns the captured output as written.
func (c *Capture) RawText() string {
	lines := c.Lines()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Raw
	}
	return strings.Join(out, "\n")
}

// Contains reports whether the plain output contains s.
func (c *Capture) Contains(s string) bool {
	return strings.Contains(c.PlainText(), s)
}

// Clear discards everything captured so far.
func (c *Capture) Clear() {
	c.mem.mu.Lock()
	defer c.mem.mu.Unlock()
	c.mem.lines = nil
	c.mem.blocks = 0
}

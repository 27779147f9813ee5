// Package console owns the diagnostic side channel.
//
// A Sink is the only thing that writes diagnostic bytes. Every call lays
// out one Renderable, encodes it for the sink's display mode and hands the
// whole block to the destination in a single Write while holding the
// sink's lock, so blocks from concurrent callers never interleave. Write
// failures are counted, never returned: a broken side channel must not
// become the caller's problem.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/arthur-debert/sidechan/pkg/detection"
	"github.com/arthur-debert/sidechan/pkg/render"
	"github.com/arthur-debert/sidechan/pkg/style"
)

// Sink serializes diagnostic output to one destination.
type Sink struct {
	mu   sync.Mutex
	dest io.Writer

	mode      detection.DisplayMode
	width     int
	theme     *style.Theme // nil follows style.Current
	intensity style.Intensity
	dark      bool

	// painter is rebuilt when the effective theme changes. Guarded by mu.
	painter      *style.Painter
	painterTheme *style.Theme

	// seq is the last sequence number handed out by a Bridge. Guarded by mu.
	seq uint64

	suppressed     atomic.Int64
	renderFailures atomic.Int64
}

// Option configures a Sink.
type Option func(*settings)

type settings struct {
	mode        *detection.DisplayMode
	override    *bool
	env         detection.Env
	interactive *bool
	theme       *style.Theme
	width       int
	intensity   style.Intensity
	dark        bool
}

// WithMode fixes the display mode, skipping detection.
func WithMode(m detection.DisplayMode) Option {
	return func(s *settings) { s.mode = &m }
}

// WithOverride applies a configured rich/plain override on top of
// detection. Nil leaves detection alone.
func WithOverride(rich *bool) Option {
	return func(s *settings) { s.override = rich }
}

// WithEnv sets the environment detection reads instead of the process
// environment.
func WithEnv(env detection.Env) Option {
	return func(s *settings) { s.env = env }
}

// WithInteractive replaces the terminal probe of the destination.
func WithInteractive(interactive bool) Option {
	return func(s *settings) { s.interactive = &interactive }
}

// WithTheme pins the sink to theme instead of following style.Current.
func WithTheme(theme *style.Theme) Option {
	return func(s *settings) { s.theme = theme }
}

// WithWidth sets the layout width, overriding COLUMNS and the probe.
func WithWidth(width int) Option {
	return func(s *settings) { s.width = width }
}

// WithIntensity sets the color depth used in rich modes.
func WithIntensity(i style.Intensity) Option {
	return func(s *settings) { s.intensity = i }
}

// WithDarkBackground selects the dark or light variant of adaptive colors.
func WithDarkBackground(dark bool) Option {
	return func(s *settings) { s.dark = dark }
}

// New creates a sink writing to dest. The display mode and width are
// resolved here, once, and never change for the life of the sink.
func New(dest io.Writer, opts ...Option) *Sink {
	cfg := settings{dark: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if dest == nil {
		dest = io.Discard
	}

	env := cfg.env
	if env == nil {
		if cfg.mode != nil {
			env = detection.Env{}
		} else {
			env = detection.EnvFromOS()
		}
	}

	var term detection.Terminal
	if cfg.mode == nil || cfg.width <= 0 {
		term = detection.ProbeTerminal(dest)
	}
	if cfg.interactive != nil {
		term.Interactive = *cfg.interactive
	}

	s := &Sink{
		dest:      dest,
		theme:     cfg.theme,
		intensity: cfg.intensity,
		dark:      cfg.dark,
		width:     cfg.width,
	}
	if cfg.mode != nil {
		s.mode = *cfg.mode
	} else {
		s.mode = detection.Resolve(cfg.override, env, term.Interactive)
	}
	if s.width <= 0 {
		s.width = detection.DeclaredWidth(env, term.Width)
	}
	return s
}

// Mode returns the display mode resolved at construction.
func (s *Sink) Mode() detection.DisplayMode { return s.mode }

// IsRich reports whether output is styled.
func (s *Sink) IsRich() bool { return s.mode.IsRich() }

// Width returns the layout width.
func (s *Sink) Width() int { return s.width }

// Theme returns the theme the next print will use.
func (s *Sink) Theme() *style.Theme {
	if s.theme != nil {
		return s.theme
	}
	return style.Current()
}

// Suppressed returns how many write or flush errors were swallowed.
func (s *Sink) Suppressed() int64 { return s.suppressed.Load() }

// RenderFailures returns how many layouts panicked.
func (s *Sink) RenderFailures() int64 { return s.renderFailures.Load() }

// Print renders r and writes it as one block.
func (s *Sink) Print(r render.Renderable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.printLocked(r)
}

// PrintText writes a plain line of text with no role.
func (s *Sink) PrintText(text string) {
	s.Print(render.NewText(style.RoleNone, text))
}

// Rule writes a horizontal rule with an optional title.
func (s *Sink) Rule(title string) {
	s.Print(render.NewRule(title))
}

// Newline writes an empty line.
func (s *Sink) Newline() {
	s.Print(render.Blank)
}

// Flush flushes the destination when it buffers.
func (s *Sink) Flush() {
	f, ok := s.dest.(interface{ Flush() error })
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := f.Flush(); err != nil {
		s.suppressed.Add(1)
	}
}

// Render lays r out the way Print would, without writing. Used to preview
// output and by tests.
func (s *Sink) Render(r render.Renderable) render.Block {
	return render.Render(r, s.mode, s.Theme(), s.width)
}

func (s *Sink) printLocked(r render.Renderable) {
	theme := s.Theme()
	block, ok := s.layoutLocked(r, theme)
	if !ok || len(block.Lines) == 0 {
		return
	}
	s.writeLocked(block.Encode(s.painterLocked(theme)))
}

// layoutLocked recovers a panicking layout and reports it through
// writeLocked, which does not take the lock the caller already holds.
func (s *Sink) layoutLocked(r render.Renderable, theme *style.Theme) (block render.Block, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			s.renderFailures.Add(1)
			msg := strings.ReplaceAll(render.Sanitize(fmt.Sprint(p)), "\n", " ")
			s.writeLocked(fmt.Sprintf("render error: %s\n", msg))
			ok = false
		}
	}()
	return render.Render(r, s.mode, theme, s.width), true
}

func (s *Sink) painterLocked(theme *style.Theme) *style.Painter {
	if !s.mode.IsRich() {
		return nil
	}
	if s.painter == nil || s.painterTheme != theme {
		s.painter = style.NewPainter(theme, s.intensity, s.dark)
		s.painterTheme = theme
	}
	return s.painter
}

// writeLocked performs the single write for a block. The caller holds mu.
func (s *Sink) writeLocked(text string) {
	if text == "" {
		return
	}
	if _, err := io.WriteString(s.dest, text); err != nil {
		s.suppressed.Add(1)
	}
}

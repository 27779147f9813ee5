package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/sidechan/pkg/errors"
	"github.com/arthur-debert/sidechan/pkg/render"
	"github.com/arthur-debert/sidechan/pkg/style"
)

// Level is the severity of a log record.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name. "warning" is accepted for warn.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.Newf(errors.ErrInvalidInput, "unknown log level: %s", s)
	}
}

// Role returns the style role records of this level are drawn with.
func (l Level) Role() style.Role {
	switch l {
	case LevelError:
		return style.RoleError
	case LevelWarn:
		return style.RoleWarning
	case LevelInfo:
		return style.RoleInfo
	default:
		return style.RoleMuted
	}
}

func (l Level) label() string {
	return fmt.Sprintf("%-5s", strings.ToUpper(l.String()))
}

// Field is an extra key/value pair attached to a record.
type Field struct {
	Key   string
	Value string
}

// LogRecord is one leveled message on its way to the sink.
type LogRecord struct {
	Level   Level
	Target  string
	Message string

	// Seq orders records. Zero asks the bridge to assign the next number.
	Seq uint64

	// Time is when the record was made. Zero uses the bridge's clock.
	Time time.Time

	Fields []Field
}

// Bridge turns log records into text lines on a sink.
type Bridge struct {
	sink       *Sink
	min        Level
	timestamps bool
	targets    bool
	sequence   bool
	clock      func() time.Time
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithMinLevel drops records below level. The default is info.
func WithMinLevel(level Level) BridgeOption {
	return func(b *Bridge) { b.min = level }
}

// WithTimestamps prefixes each line with the record time.
func WithTimestamps(on bool) BridgeOption {
	return func(b *Bridge) { b.timestamps = on }
}

// WithTargets prefixes each line with the record target.
func WithTargets(on bool) BridgeOption {
	return func(b *Bridge) { b.targets = on }
}

// WithSequence prefixes each line with the record's sequence number.
func WithSequence(on bool) BridgeOption {
	return func(b *Bridge) { b.sequence = on }
}

// WithClock sets the clock used for records without a time.
func WithClock(clock func() time.Time) BridgeOption {
	return func(b *Bridge) { b.clock = clock }
}

// NewBridge returns a bridge printing to sink.
func NewBridge(sink *Sink, opts ...BridgeOption) *Bridge {
	b := &Bridge{sink: sink, min: LevelInfo, targets: true, clock: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Sink returns the sink the bridge prints to.
func (b *Bridge) Sink() *Sink { return b.sink }

// MinLevel returns the least severe level printed.
func (b *Bridge) MinLevel() Level { return b.min }

// Enabled reports whether records at level would be printed.
func (b *Bridge) Enabled(level Level) bool { return level >= b.min }

// Log prints rec if it passes the level filter. Sequence numbers are
// assigned under the sink lock, so output order follows them.
func (b *Bridge) Log(rec LogRecord) {
	if !b.Enabled(rec.Level) {
		return
	}
	if b.timestamps && rec.Time.IsZero() {
		rec.Time = b.clock()
	}

	s := b.sink
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.Seq == 0 {
		s.seq++
		rec.Seq = s.seq
	} else if rec.Seq > s.seq {
		s.seq = rec.Seq
	}
	s.printLocked(b.Format(rec))
}

// Error logs message at error level.
func (b *Bridge) Error(target, message string) { b.logMsg(LevelError, target, message) }

// Warn logs message at warn level.
func (b *Bridge) Warn(target, message string) { b.logMsg(LevelWarn, target, message) }

// Info logs message at info level.
func (b *Bridge) Info(target, message string) { b.logMsg(LevelInfo, target, message) }

// Debug logs message at debug level.
func (b *Bridge) Debug(target, message string) { b.logMsg(LevelDebug, target, message) }

// Trace logs message at trace level.
func (b *Bridge) Trace(target, message string) { b.logMsg(LevelTrace, target, message) }

func (b *Bridge) logMsg(level Level, target, message string) {
	b.Log(LogRecord{Level: level, Target: target, Message: message})
}

// Format builds the text a record prints as:
//
//	[#seq] [time] LEVEL [target:] message key=value...
func (b *Bridge) Format(rec LogRecord) render.Renderable {
	role := rec.Level.Role()
	var spans []style.Span
	if b.sequence {
		spans = append(spans, style.Span{Role: style.RoleMuted, Text: fmt.Sprintf("#%d ", rec.Seq)})
	}
	if b.timestamps && !rec.Time.IsZero() {
		spans = append(spans, style.Span{Role: style.RoleMuted, Text: rec.Time.Format("15:04:05.000") + " "})
	}
	spans = append(spans, style.Span{Role: role, Text: rec.Level.label()}, style.Span{Text: " "})
	if b.targets && rec.Target != "" {
		spans = append(spans, style.Span{Role: style.RoleKey, Text: rec.Target + ":"}, style.Span{Text: " "})
	}
	spans = append(spans, style.Span{Role: role, Text: rec.Message})
	for _, f := range rec.Fields {
		spans = append(spans,
			style.Span{Text: " "},
			style.Span{Role: style.RoleMuted, Text: f.Key + "="},
			style.Span{Role: style.RoleValue, Text: f.Value},
		)
	}
	return render.NewSpans(spans...)
}

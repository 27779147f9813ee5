package console

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Writer returns a zerolog writer that feeds b. Each JSON event becomes a
// LogRecord: the zerolog level, the "component" field as target, the
// message, and the remaining fields in emitted order.
func (b *Bridge) Writer() zerolog.LevelWriter {
	return zerologWriter{bridge: b}
}

// componentField names the target, as set by logging.GetLogger.
const componentField = "component"

type zerologWriter struct {
	bridge *Bridge
}

func (w zerologWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

func (w zerologWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level == zerolog.Disabled {
		return len(p), nil
	}
	rec, ok := parseEvent(p)
	if !ok {
		rec = LogRecord{Level: fromZerolog(level), Message: strings.TrimSpace(string(p))}
	} else if level != zerolog.NoLevel {
		rec.Level = fromZerolog(level)
	}
	w.bridge.Log(rec)
	return len(p), nil
}

func fromZerolog(level zerolog.Level) Level {
	switch level {
	case zerolog.TraceLevel:
		return LevelTrace
	case zerolog.DebugLevel:
		return LevelDebug
	case zerolog.WarnLevel:
		return LevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return LevelError
	default:
		return LevelInfo
	}
}

// parseEvent decodes one zerolog JSON line keeping field order.
func parseEvent(p []byte) (LogRecord, bool) {
	rec := LogRecord{Level: LevelInfo}
	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return rec, false
	}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return rec, false
		}
		key, _ := kt.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return rec, false
		}
		value := string(raw)
		var s string
		if json.Unmarshal(raw, &s) == nil {
			value = s
		}

		switch key {
		case zerolog.LevelFieldName:
			if l, err := zerolog.ParseLevel(value); err == nil {
				rec.Level = fromZerolog(l)
			}
		case zerolog.MessageFieldName:
			rec.Message = value
		case zerolog.TimestampFieldName:
			if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
				rec.Time = t
			}
		case componentField:
			rec.Target = value
		default:
			rec.Fields = append(rec.Fields, Field{Key: key, Value: value})
		}
	}
	return rec, true
}

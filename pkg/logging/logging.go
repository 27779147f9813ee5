// Package logging configures the process-wide zerolog logger so every log
// event ends up on the diagnostic console, never on stdout.
package logging

import (
	"time"

	"github.com/arthur-debert/sidechan/pkg/console"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger routes the global logger through bridge. Verbosity lowers
// the bridge's minimum level one step per -v, down to trace.
func SetupLogger(bridge *console.Bridge, verbosity int) {
	zerolog.SetGlobalLevel(ZerologLevel(bridge.MinLevel()))

	log.Logger = zerolog.New(bridge.Writer()).With().Timestamp().Logger()

	// Add caller information for debug and trace levels
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("level", bridge.MinLevel().String()).Msg("Logger initialized")
}

// VerbosityLevel lowers base by one level per verbosity step.
func VerbosityLevel(base console.Level, verbosity int) console.Level {
	l := base - console.Level(verbosity)
	if l < console.LevelTrace {
		return console.LevelTrace
	}
	return l
}

// ZerologLevel maps a console level to zerolog's.
func ZerologLevel(l console.Level) zerolog.Level {
	switch l {
	case console.LevelTrace:
		return zerolog.TraceLevel
	case console.LevelDebug:
		return zerolog.DebugLevel
	case console.LevelWarn:
		return zerolog.WarnLevel
	case console.LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// WithFields returns a logger with additional fields
func WithFields(fields map[string]interface{}) zerolog.Logger {
	logger := log.Logger
	for k, v := range fields {
		logger = logger.With().Interface(k, v).Logger()
	}
	return logger
}

// LogDuration logs the duration of an operation
func LogDuration(start time.Time, operation string) {
	log.Debug().
		Str("operation", operation).
		Dur("duration", time.Since(start)).
		Msg("Operation completed")
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}

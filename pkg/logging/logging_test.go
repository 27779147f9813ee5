// pkg/logging/logging_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: zerolog global state
// PURPOSE: Test that the global logger feeds the console bridge

package logging_test

import (
	"testing"

	"github.com/arthur-debert/sidechan/pkg/console"
	"github.com/arthur-debert/sidechan/pkg/detection"
	"github.com/arthur-debert/sidechan/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func setup(t *testing.T, min console.Level, verbosity int) *console.Capture {
	t.Helper()
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	c := console.NewCapture(detection.Plain("test"))
	bridge := console.NewBridge(c.Sink, console.WithMinLevel(min))
	logging.SetupLogger(bridge, verbosity)
	return c
}

func TestSetupLoggerRoutesToBridge(t *testing.T) {
	c := setup(t, console.LevelInfo, 0)

	logger := logging.GetLogger("server")
	logger.Info().Str("transport", "stdio").Msg("listening")
	log.Debug().Msg("hidden")

	assert.Equal(t, "INFO  server: listening transport=stdio", c.PlainText())
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetupLoggerLevels(t *testing.T) {
	tests := []struct {
		name string
		min  console.Level
		want zerolog.Level
	}{
		{"trace", console.LevelTrace, zerolog.TraceLevel},
		{"debug", console.LevelDebug, zerolog.DebugLevel},
		{"warn", console.LevelWarn, zerolog.WarnLevel},
		{"error", console.LevelError, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t, tt.min, 0)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestVerbosityLevel(t *testing.T) {
	assert.Equal(t, console.LevelWarn, logging.VerbosityLevel(console.LevelWarn, 0))
	assert.Equal(t, console.LevelInfo, logging.VerbosityLevel(console.LevelWarn, 1))
	assert.Equal(t, console.LevelDebug, logging.VerbosityLevel(console.LevelWarn, 2))
	assert.Equal(t, console.LevelTrace, logging.VerbosityLevel(console.LevelWarn, 9))
}

func TestWithFields(t *testing.T) {
	c := setup(t, console.LevelInfo, 0)
	logger := logging.WithFields(map[string]interface{}{"pack": "vim"})
	logger.Warn().Msg("slow")
	assert.Equal(t, "WARN  slow pack=vim", c.PlainText())
}

func TestLogOperationStart(t *testing.T) {
	c := setup(t, console.LevelDebug, 2)
	done := logging.LogOperationStart(logging.GetLogger("init"), "load-theme")
	done()

	lines := c.Lines()
	// the setup line plus start and completion
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1].Plain, "init: Operation started")
	assert.Contains(t, lines[1].Plain, "operation=load-theme")
	assert.Contains(t, lines[2].Plain, "Operation completed")
}

// pkg/config/config_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Filesystem (t.TempDir), environment (t.Setenv)
// PURPOSE: Test layered loading, validation and derived options

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/sidechan/pkg/config"
	"github.com/arthur-debert/sidechan/pkg/console"
	"github.com/arthur-debert/sidechan/pkg/errors"
	"github.com/arthur-debert/sidechan/pkg/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := config.Default()

	assert.Nil(t, cfg.Rich)
	assert.True(t, cfg.Banner)
	assert.Equal(t, config.BannerFull, cfg.BannerStyle)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.TrafficSummary, cfg.Traffic)
	assert.Equal(t, style.IntensityANSI256, cfg.Intensity())
	assert.True(t, cfg.DarkBackground)
	assert.Equal(t, 100, cfg.MaxTableRows)
	assert.Equal(t, 5, cfg.MaxJSONDepth)
	assert.Equal(t, 200, cfg.TruncateAt)
	assert.True(t, cfg.ShowSuggestions)
	assert.False(t, cfg.ShowBacktrace)
	assert.Equal(t, console.LevelInfo, cfg.Level())
	assert.Contains(t, config.DefaultsContent(), "max_table_rows")
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
rich = false
traffic = "full"
log_level = "debug"
max_table_rows = 10
`)

	cfg, err := config.Load(config.LoadOptions{Path: path})
	require.NoError(t, err)

	require.NotNil(t, cfg.Rich)
	assert.False(t, *cfg.Rich)
	assert.Equal(t, config.TrafficFull, cfg.Traffic)
	assert.Equal(t, console.LevelDebug, cfg.Level())
	assert.Equal(t, 10, cfg.MaxTableRows)
	// untouched keys keep defaults
	assert.Equal(t, 200, cfg.TruncateAt)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, `traffic = "full"
log_level = "debug"
`)
	t.Setenv("SIDECHAN_TRAFFIC", "silent")
	t.Setenv("SIDECHAN_MAX_JSON_DEPTH", "2")

	cfg, err := config.Load(config.LoadOptions{
		Path:      path,
		Overrides: map[string]interface{}{"log_level": "error"},
	})
	require.NoError(t, err)

	assert.Equal(t, config.TrafficSilent, cfg.Traffic, "env beats file")
	assert.Equal(t, 2, cfg.MaxJSONDepth)
	assert.Equal(t, "error", cfg.LogLevel, "overrides beat everything")
}

func TestDetectorVariablesAreIgnored(t *testing.T) {
	t.Setenv("SIDECHAN_RICH", "0")
	t.Setenv("SIDECHAN_PLAIN", "1")

	cfg, err := config.Load(config.LoadOptions{SkipUserFile: true})
	require.NoError(t, err)
	assert.Nil(t, cfg.Rich)
}

func TestRichOverrideFromString(t *testing.T) {
	cfg, err := config.Load(config.LoadOptions{
		SkipUserFile: true,
		Overrides:    map[string]interface{}{"rich": "true"},
	})
	require.NoError(t, err)
	require.NotNil(t, cfg.Rich)
	assert.True(t, *cfg.Rich)
}

func TestBannerDisabledByFile(t *testing.T) {
	cfg, err := config.Load(config.LoadOptions{Path: writeConfig(t, `banner = false`)})
	require.NoError(t, err)
	assert.False(t, cfg.Banner)
	assert.False(t, cfg.ShowBanner())
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := config.Load(config.LoadOptions{Path: filepath.Join(t.TempDir(), "nope.toml")})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed toml", func(t *testing.T) {
		_, err := config.Load(config.LoadOptions{Path: writeConfig(t, "traffic = [")})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, content := range []string{
			`traffic = "loud"`,
			`log_level = "chatty"`,
			`banner_style = "huge"`,
			`color_intensity = "neon"`,
			`truncate_at = -1`,
		} {
			_, err := config.Load(config.LoadOptions{Path: writeConfig(t, content)})
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), content)
		}
	})
}

func TestDerivedOptions(t *testing.T) {
	cfg := config.Default()
	assert.Len(t, cfg.SinkOptions(), 3)
	assert.Len(t, cfg.BridgeOptions(), 3)

	theme, err := cfg.LoadTheme()
	require.NoError(t, err)
	assert.Nil(t, theme)

	themePath := filepath.Join(t.TempDir(), "mine.yaml")
	require.NoError(t, os.WriteFile(themePath, []byte("glyphs: ascii\n"), 0644))
	cfg.Theme = themePath
	theme, err = cfg.LoadTheme()
	require.NoError(t, err)
	assert.Equal(t, "mine", theme.Name())
}

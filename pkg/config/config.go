package config

import (
	"strings"

	"github.com/arthur-debert/sidechan/pkg/console"
	"github.com/arthur-debert/sidechan/pkg/errors"
	"github.com/arthur-debert/sidechan/pkg/style"
)

// Traffic is how much protocol traffic the console shows.
type Traffic string

const (
	TrafficSilent  Traffic = "silent"
	TrafficSummary Traffic = "summary"
	TrafficFull    Traffic = "full"
)

// BannerStyle selects how much of the startup banner is drawn.
type BannerStyle string

const (
	BannerFull    BannerStyle = "full"
	BannerCompact BannerStyle = "compact"
	BannerMinimal BannerStyle = "minimal"
	BannerNone    BannerStyle = "none"
)

// Config is the complete set of console settings.
type Config struct {
	// Rich overrides display mode detection. Nil means detect.
	Rich *bool `koanf:"rich"`

	Banner      bool        `koanf:"banner"`
	BannerStyle BannerStyle `koanf:"banner_style"`

	LogLevel      string `koanf:"log_level"`
	LogTimestamps bool   `koanf:"log_timestamps"`
	LogTargets    bool   `koanf:"log_targets"`

	Traffic Traffic `koanf:"traffic"`

	ColorIntensity string `koanf:"color_intensity"`
	DarkBackground bool   `koanf:"dark_background"`

	// Theme is the path of a theme file. Empty uses the built-in theme.
	Theme string `koanf:"theme"`

	ShowSuggestions bool `koanf:"show_suggestions"`
	ShowErrorCodes  bool `koanf:"show_error_codes"`
	ShowBacktrace   bool `koanf:"show_backtrace"`

	MaxTableRows int `koanf:"max_table_rows"`
	MaxJSONDepth int `koanf:"max_json_depth"`
	TruncateAt   int `koanf:"truncate_at"`
}

// Validate checks every enumerated and numeric setting.
func (c *Config) Validate() error {
	if _, err := console.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid log_level").WithDetail("value", c.LogLevel)
	}
	if _, err := style.ParseIntensity(c.ColorIntensity); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid color_intensity").WithDetail("value", c.ColorIntensity)
	}
	switch c.Traffic {
	case TrafficSilent, TrafficSummary, TrafficFull:
	default:
		return errors.Newf(errors.ErrConfigValid, "invalid traffic verbosity: %s", c.Traffic)
	}
	switch c.BannerStyle {
	case BannerFull, BannerCompact, BannerMinimal, BannerNone:
	default:
		return errors.Newf(errors.ErrConfigValid, "invalid banner_style: %s", c.BannerStyle)
	}
	for name, v := range map[string]int{
		"max_table_rows": c.MaxTableRows,
		"max_json_depth": c.MaxJSONDepth,
		"truncate_at":    c.TruncateAt,
	} {
		if v < 0 {
			return errors.Newf(errors.ErrConfigValid, "%s must not be negative", name).WithDetail("value", v)
		}
	}
	return nil
}

// Level returns the minimum log level. Validate has checked it.
func (c *Config) Level() console.Level {
	l, _ := console.ParseLevel(c.LogLevel)
	return l
}

// Intensity returns the color depth. Validate has checked it.
func (c *Config) Intensity() style.Intensity {
	i, _ := style.ParseIntensity(c.ColorIntensity)
	return i
}

// ShowBanner reports whether a banner should be drawn at all.
func (c *Config) ShowBanner() bool {
	return c.Banner && c.BannerStyle != BannerNone
}

// SinkOptions returns the console options these settings imply.
func (c *Config) SinkOptions() []console.Option {
	return []console.Option{
		console.WithOverride(c.Rich),
		console.WithIntensity(c.Intensity()),
		console.WithDarkBackground(c.DarkBackground),
	}
}

// BridgeOptions returns the logging bridge options these settings imply.
func (c *Config) BridgeOptions() []console.BridgeOption {
	return []console.BridgeOption{
		console.WithMinLevel(c.Level()),
		console.WithTimestamps(c.LogTimestamps),
		console.WithTargets(c.LogTargets),
	}
}

// LoadTheme loads the configured theme file, or returns nil when none is
// set.
func (c *Config) LoadTheme() (*style.Theme, error) {
	path := strings.TrimSpace(c.Theme)
	if path == "" {
		return nil, nil
	}
	return style.LoadTheme(path)
}

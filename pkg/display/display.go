// Package display holds the diagnostic widgets a server prints to its
// operator: the startup banner, request status lines, capability tables,
// error reports, protocol traffic and notices.
//
// Every widget is a single render.Renderable. Whether it comes out styled
// or plain is decided by the sink that prints it, never here.
package display

import (
	"github.com/arthur-debert/sidechan/pkg/config"
)

// Options are the presentation settings widgets read.
type Options struct {
	BannerStyle config.BannerStyle
	Traffic     config.Traffic

	ShowCodes       bool
	ShowSuggestions bool
	ShowBacktrace   bool

	MaxRows    int
	MaxDepth   int
	TruncateAt int
}

// OptionsFrom extracts the display settings from cfg. A nil cfg yields the
// built-in defaults.
func OptionsFrom(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.Default()
	}
	banner := cfg.BannerStyle
	if !cfg.Banner {
		banner = config.BannerNone
	}
	return Options{
		BannerStyle:     banner,
		Traffic:         cfg.Traffic,
		ShowCodes:       cfg.ShowErrorCodes,
		ShowSuggestions: cfg.ShowSuggestions,
		ShowBacktrace:   cfg.ShowBacktrace,
		MaxRows:         cfg.MaxTableRows,
		MaxDepth:        cfg.MaxJSONDepth,
		TruncateAt:      cfg.TruncateAt,
	}
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options { return OptionsFrom(nil) }

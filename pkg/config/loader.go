package config

import (
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/sidechan/pkg/detection"
	"github.com/arthur-debert/sidechan/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read as configuration.
const EnvPrefix = "SIDECHAN_"

// UserConfigFile is the config file looked up under the XDG config
// directories.
const UserConfigFile = "sidechan/config.toml"

// detectorVars are read by the display mode detector directly. Letting the
// config layer see them too would make SIDECHAN_RICH=0 mean "force plain"
// here but "not set" there.
var detectorVars = map[string]bool{
	detection.EnvRich:       true,
	detection.EnvForceColor: true,
	detection.EnvPlain:      true,
}

// LoadOptions controls where Load reads from.
type LoadOptions struct {
	// Path is an explicit config file. It must exist. Empty searches the
	// XDG config directories and skips the file layer if none is found.
	Path string

	// SkipUserFile disables the XDG search.
	SkipUserFile bool

	// Overrides are applied last, keyed like the config file.
	Overrides map[string]interface{}
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipUserFile: true})
	if err != nil {
		// the embedded file is part of the binary; this is a build defect
		panic(err)
	}
	return cfg
}

// Load merges defaults, the config file, the environment and overrides,
// then validates the result.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Config file
	path := opts.Path
	if path == "" && !opts.SkipUserFile {
		if found, err := xdg.SearchConfigFile(UserConfigFile); err == nil {
			path = found
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
				WithDetail("path", path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path).
				WithDetail("path", path)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				stringToBoolPtrHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps SIDECHAN_LOG_LEVEL to log_level. Returning "" skips the
// variable.
func envKey(name string) string {
	if detectorVars[name] {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
}

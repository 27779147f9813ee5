// Package config loads sidechan settings from layered sources: embedded
// defaults, a TOML file, SIDECHAN_* environment variables and command line
// overrides, in increasing order of precedence.
package config

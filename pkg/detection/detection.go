package detection

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables consulted by Detect. Spellings are configuration
// detail; the precedence between them is what Detect guarantees.
const (
	EnvRich       = "SIDECHAN_RICH"
	EnvForceColor = "SIDECHAN_FORCE_COLOR"
	EnvPlain      = "SIDECHAN_PLAIN"
	EnvNoColor    = "NO_COLOR"
	EnvColumns    = "COLUMNS"
)

// AgentIndicators are set by CI systems and MCP clients when they spawn a
// process. Any one of them selects plain output unless forced otherwise.
var AgentIndicators = []string{
	"CI",
	"AGENT_MODE",
	"MCP_CLIENT",
	"CLAUDE_CODE",
	"CODEX_CLI",
	"CURSOR_SESSION",
}

// DefaultWidth is used when no width is declared or probed.
const DefaultWidth = 80

// Env is a snapshot of environment variables.
type Env map[string]string

// EnvFromOS snapshots the process environment.
func EnvFromOS() Env {
	env := make(Env)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Flag reports whether name is set to a truthy value. Unset, empty and
// falsey values ("0", "false", "no", "off") all count as absent.
func (e Env) Flag(name string) bool {
	v, ok := e[name]
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

// Present reports whether name is set to any non-empty value.
func (e Env) Present(name string) bool {
	return e[name] != ""
}

// Detect resolves the display mode. It is total: every environment maps to
// exactly one mode, and malformed values are treated as unset.
//
// Precedence, highest first: force-rich, force-plain or NO_COLOR, agent
// indicators, interactive terminal, default plain.
func Detect(env Env, interactive bool) DisplayMode {
	switch {
	case env.Flag(EnvRich):
		return DisplayMode{Mode: ForcedRich, Reason: EnvRich + " is set"}
	case env.Flag(EnvForceColor):
		return DisplayMode{Mode: ForcedRich, Reason: EnvForceColor + " is set"}
	case env.Flag(EnvPlain):
		return DisplayMode{Mode: ForcedPlain, Reason: EnvPlain + " is set"}
	case env.Present(EnvNoColor):
		return DisplayMode{Mode: ForcedPlain, Reason: EnvNoColor + " is set"}
	}

	for _, name := range AgentIndicators {
		if env.Flag(name) {
			return DisplayMode{Mode: AutoPlain, Reason: "agent context (" + name + ")"}
		}
	}

	if interactive {
		return DisplayMode{Mode: AutoRich, Reason: "interactive terminal"}
	}
	return DisplayMode{Mode: AutoPlain, Reason: "not a terminal"}
}

// Resolve applies an explicit tri-state override on top of Detect. A nil
// override defers to the environment.
func Resolve(override *bool, env Env, interactive bool) DisplayMode {
	if override != nil {
		if *override {
			return Rich("configuration")
		}
		return Plain("configuration")
	}
	return Detect(env, interactive)
}

// DeclaredWidth returns COLUMNS when it is a positive integer, then the
// probed width, then DefaultWidth.
func DeclaredWidth(env Env, probed int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(env[EnvColumns])); err == nil && n > 0 {
		return n
	}
	if probed > 0 {
		return probed
	}
	return DefaultWidth
}

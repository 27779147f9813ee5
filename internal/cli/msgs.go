package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "A diagnostic console for stdio servers"
	MsgVersionShort = "Print version information"
	MsgVersionLong  = "Print detailed version information including commit hash and build date"
	MsgServeShort   = "Run the demo MCP server over stdin/stdout"
	MsgDetectShort  = "Show how the console decided to render"
	MsgGalleryShort = "Print every console widget"
	MsgTopicsShort  = "Display available documentation topics"
	MsgTopicsLong   = "Display a list of all available help topics that provide additional documentation beyond command help."

	// Status messages
	MsgVersionFormat = "sidechan version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"
	MsgServerStopped = "Server stopped"
	MsgServeErrors   = "%d request(s) failed during this session"

	// Error messages
	MsgErrNoCommand  = "no command specified"
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrLoadTheme  = "failed to load theme: %w"
	MsgErrServe      = "server failed: %w"
	MsgErrLoadTopics = "failed to load help topics: %w"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v DEBUG, -vv TRACE)"
	MsgFlagRich     = "Force styled output on the diagnostic stream"
	MsgFlagPlain    = "Force plain output on the diagnostic stream"
	MsgFlagLogLevel = "Minimum log level (trace, debug, info, warn, error)"
	MsgFlagTraffic  = "Protocol traffic shown on the console (silent, summary, full)"
	MsgFlagNoBanner = "Do not print the startup banner"
	MsgFlagConfig   = "Path to a config file (default: $XDG_CONFIG_HOME/sidechan/config.toml)"
	MsgFlagRequests = "Print a status line for every completed request"
)

// MsgRootLong is the root command's long description.
const MsgRootLong = `sidechan keeps two streams apart: stdout carries the protocol and nothing
else, while stderr carries a human-facing console of logs, tables, panels
and error reports.

The console decides once, at startup, whether to draw styled or plain
output. Run 'sidechan detect' to see what it decided and why, and
'sidechan help modes' for the rules.`

// MsgServeLong is the serve command's long description.
const MsgServeLong = `Serve runs a small Model Context Protocol server on stdin/stdout. It has
a few tools (echo, shout, time, fail), a resource and a prompt, and exists
to show the console at work: the banner, protocol traffic, request status
lines and error reports all go to stderr while replies go to stdout.`

// MsgServeExample shows how to drive the server by hand.
const MsgServeExample = `  # Call a tool with full traffic shown
  echo '{"jsonrpc":"2.0","id":1,"method":"tools/list"}' | sidechan serve --traffic full

  # Keep the console quiet
  sidechan serve --traffic silent --no-banner`

package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/sidechan/internal/version"
	"github.com/arthur-debert/sidechan/pkg/config"
	"github.com/arthur-debert/sidechan/pkg/console"
	"github.com/arthur-debert/sidechan/pkg/display"
	"github.com/arthur-debert/sidechan/pkg/errors"
	"github.com/arthur-debert/sidechan/pkg/logging"
	"github.com/arthur-debert/sidechan/pkg/style"
	"github.com/arthur-debert/sidechan/pkg/topics"
)

// app is what every command shares once the root has set up the console.
type app struct {
	cfg    *config.Config
	sink   *console.Sink
	bridge *console.Bridge
	opts   display.Options
	topics *topics.TopicManager

	// topicsErr is why topics is nil.
	topicsErr error
}

type globalFlags struct {
	verbosity  int
	rich       bool
	plain      bool
	logLevel   string
	traffic    string
	noBanner   bool
	configPath string
}

// overrides turns the flags the user actually set into config keys.
func (f *globalFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	set := cmd.Flags().Changed
	o := make(map[string]interface{})
	if set("rich") && f.rich {
		o["rich"] = "true"
	}
	if set("plain") && f.plain {
		o["rich"] = "false"
	}
	if set("log-level") {
		o["log_level"] = f.logLevel
	}
	if set("traffic") {
		o["traffic"] = f.traffic
	}
	if set("no-banner") && f.noBanner {
		o["banner"] = false
	}
	return o
}

// setup loads the configuration and installs the process-wide console on
// the command's error stream. Stdout is left to the command.
func (a *app) setup(cmd *cobra.Command, f *globalFlags) error {
	cfg, err := config.Load(config.LoadOptions{
		Path:      f.configPath,
		Overrides: f.overrides(cmd),
	})
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}

	theme, err := cfg.LoadTheme()
	if err != nil {
		return fmt.Errorf(MsgErrLoadTheme, err)
	}
	if theme != nil {
		style.Install(theme)
	}

	a.cfg = cfg
	a.opts = display.OptionsFrom(cfg)
	a.sink, err = console.Init(cmd.ErrOrStderr(), cfg.SinkOptions()...)
	if errors.IsErrorCode(err, errors.ErrAlreadyInitialized) {
		// A second run in the same process, as in tests.
		a.sink, err = console.New(cmd.ErrOrStderr(), cfg.SinkOptions()...), nil
	}
	if err != nil {
		return err
	}

	level := logging.VerbosityLevel(cfg.Level(), f.verbosity)
	a.bridge = console.NewBridge(a.sink, append(cfg.BridgeOptions(), console.WithMinLevel(level))...)
	logging.SetupLogger(a.bridge, f.verbosity)

	log.Debug().
		Str("command", cmd.Name()).
		Str("mode", a.sink.Mode().String()).
		Int("width", a.sink.Width()).
		Msg("Command started")
	return nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		a     = &app{}
		flags globalFlags
	)

	rootCmd := &cobra.Command{
		Use:     "sidechan",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, &flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			// Show help but return an error to indicate incorrect usage
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVar(&flags.rich, "rich", false, MsgFlagRich)
	pf.BoolVar(&flags.plain, "plain", false, MsgFlagPlain)
	pf.StringVar(&flags.logLevel, "log-level", "", MsgFlagLogLevel)
	pf.StringVar(&flags.traffic, "traffic", "", MsgFlagTraffic)
	pf.BoolVar(&flags.noBanner, "no-banner", false, MsgFlagNoBanner)
	pf.StringVar(&flags.configPath, "config", "", MsgFlagConfig)
	rootCmd.MarkFlagsMutuallyExclusive("rich", "plain")

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newDetectCmd(a))
	rootCmd.AddCommand(newGalleryCmd(a))
	rootCmd.AddCommand(newTopicsCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	// Topic-based help. Markdown is rendered with glamour once the
	// console has decided it is rich.
	tm, err := topics.Builtin(topics.Options{Renderer: topicRenderer{app: a}})
	if err != nil {
		a.topicsErr = err
	} else {
		a.topics = tm
		tm.Install(rootCmd)
	}

	return rootCmd
}

// topicRenderer defers the choice of renderer until the console exists.
type topicRenderer struct {
	app *app
}

func (r topicRenderer) Render(content string, format string) string {
	if r.app.sink == nil || !r.app.sink.IsRich() {
		return content
	}
	return topics.NewGlamourRenderer(r.app.cfg.DarkBackground, r.app.sink.Width()).Render(content, format)
}

func newTopicsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.topics == nil {
				return fmt.Errorf(MsgErrLoadTopics, a.topicsErr)
			}
			a.topics.WriteIndex(cmd.OutOrStdout(), cmd.Root().Name())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

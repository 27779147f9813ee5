package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/sidechan/pkg/render"
)

func newDetectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "detect",
		Short:   MsgDetectShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := a.sink.Mode()
			rich := "no"
			if mode.IsRich() {
				rich = "yes"
			}

			t := render.NewTable("Setting", "Value")
			t.Title = "Console"
			t.AddRow("mode", mode.Mode.String())
			t.AddRow("reason", mode.Reason)
			t.AddRow("styled", rich)
			t.AddRow("width", strconv.Itoa(a.sink.Width()))
			t.AddRow("theme", a.sink.Theme().Name())
			t.AddRow("color intensity", a.cfg.ColorIntensity)
			t.AddRow("log level", a.bridge.MinLevel().String())
			t.AddRow("traffic", string(a.opts.Traffic))
			a.sink.Print(t)
			return nil
		},
	}
}

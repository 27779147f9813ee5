package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/sidechan/internal/mcpserver"
	"github.com/arthur-debert/sidechan/internal/version"
	"github.com/arthur-debert/sidechan/pkg/config"
	"github.com/arthur-debert/sidechan/pkg/display"
	"github.com/arthur-debert/sidechan/pkg/logging"
)

func newServeCmd(a *app) *cobra.Command {
	var requests bool

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   MsgServeShort,
		Long:    MsgServeLong,
		Example: MsgServeExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("serve")

			srv := mcpserver.New(mcpserver.Options{
				Name:       "sidechan",
				Version:    version.Version,
				Sink:       a.sink,
				Display:    a.opts,
				RequestLog: requests,
				Mode:       a.sink.Mode().String(),
			})

			a.sink.Print(display.NewBanner(srv.Info(), a.opts.BannerStyle))
			if a.opts.BannerStyle == config.BannerFull {
				a.sink.Print(display.ToolsTable(srv.Tools(), a.opts.MaxRows))
			}

			if err := srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return fmt.Errorf(MsgErrServe, err)
			}
			logger.Info().Msg(MsgServerStopped)

			if n := srv.Errors(); n > 0 {
				a.sink.Print(display.Warning(fmt.Sprintf(MsgServeErrors, n)))
			}
			a.sink.Flush()
			return nil
		},
	}

	cmd.Flags().BoolVar(&requests, "requests", false, MsgFlagRequests)
	return cmd
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/sidechan/internal/cli"
	"github.com/arthur-debert/sidechan/pkg/console"
	"github.com/arthur-debert/sidechan/pkg/render"
	"github.com/arthur-debert/sidechan/pkg/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := cli.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// The root command installed the configured console; if setup
		// failed before that, Default detects one from the environment.
		console.Default().Print(render.NewText(style.RoleError, "Error: "+err.Error()))
		os.Exit(1)
	}
}

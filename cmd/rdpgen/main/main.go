package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/arthur-debert/rdpgen/cmd/rdpgen"
	"github.com/arthur-debert/rdpgen/pkg/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := rdpgen.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printer := ui.NewPrinter(os.Stderr, ui.DetectFormat(os.Stderr))
		_ = printer.Error(err)
		stop()
		os.Exit(1)
	}
}

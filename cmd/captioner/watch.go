package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ZuhairUmer/auto-captioner-free/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Caption every video dropped into the input directory",
	Long: `Watch monitors paths.input and renders a captioned copy of each new
video file into paths.output, processing up to performance.max_concurrent
files at once. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	w, err := watcher.New(a.cfg.Paths.Input, a.proc.Process, a.log, a.cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "Captioner is ready")
	a.log.Info(ctx, "Monitoring: %s", a.cfg.Paths.Input)
	a.log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	a.log.Info(ctx, "Max concurrent renders: %d", a.cfg.Performance.MaxConcurrent)
	a.log.Info(ctx, "Press Ctrl+C to stop")
	a.log.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && err != context.Canceled {
		return err
	}

	a.log.Info(ctx, "Captioner stopped")
	return nil
}

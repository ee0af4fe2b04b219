package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/las"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"watcher", "dev"},
	Short:   "Regenerate CSS whenever source files change",
	Long: `Scan the configured directories once, write the stylesheet, then keep it
up to date as files are created or modified. Stop with Ctrl+C.`,
	RunE: runWatch,
}

func init() {
	addScanFlags(watchCmd)
	watchCmd.Flags().StringP("output", "o", "", "Output stylesheet path (default ./dist/jit.css)")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := buildOptions(watchDefaults, log)
	w, err := las.NewWatcher(opts)
	if err != nil {
		return err
	}

	return watch(ctx, cmd, w, opts)
}

func watch(ctx context.Context, cmd *cobra.Command, w *las.Watcher, opts las.Options) error {
	quiet := getBoolWithFallback("quiet", false)
	reporter := newReporter(cmd.OutOrStdout())

	stats, err := w.Prime(ctx)
	if err != nil {
		return fmt.Errorf("initial scan failed: %w", err)
	}
	opts.Logger.Info("watching",
		zap.Strings("dirs", opts.ScanDirs),
		zap.Strings("extensions", opts.Extensions),
		zap.String("output", opts.OutputPath))

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d classes)\n", opts.OutputPath, stats.Total)
		reporter.PrintUnresolved(stats)
		w.OnUpdate(func(path string, added int, stats las.Stats) {
			reporter.PrintWatchUpdate(las.GetRelativePath(path), added, stats)
		})
	}

	return w.Run(ctx)
}

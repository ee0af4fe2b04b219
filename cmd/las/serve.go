package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/las"
	"github.com/yacobolo/las/internal/devserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stylesheet from memory with live updates",
	Long: `Start a development server that keeps the generated stylesheet in memory.
GET /las.css returns the current CSS, HTML pages under --root get it injected,
and connected browsers reload styles over a websocket after every change.`,
	RunE: runServe,
}

func init() {
	addScanFlags(serveCmd)
	f := serveCmd.Flags()
	f.String("addr", ":5173", "Listen address")
	f.String("root", ".", "Static file root")
}

func runServe(cmd *cobra.Command, _ []string) error {
	log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := buildOptions(watchDefaults, log)
	sources, err := las.LoadSources(opts.Sources)
	if err != nil {
		return err
	}

	engine := las.NewEngine(sources, opts)
	if err := engine.Init(ctx, opts.ScanDirs); err != nil {
		return err
	}
	stats := engine.Stats()
	log.Info("stylesheet ready", zap.Int("resolved", stats.Resolved), zap.Int("unresolved", stats.Unresolved))

	gin.SetMode(gin.ReleaseMode)
	server := devserver.New(engine, devserver.Config{
		Addr:   getStringWithFallback("serve.addr", ":5173"),
		Root:   k.String("serve.root"),
		Logger: log,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx)
	})
	g.Go(func() error {
		return engine.Watch(ctx, server.Notify)
	})
	return g.Wait()
}

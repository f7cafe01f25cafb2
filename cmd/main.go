// Command medailles builds, serves and exports the France Winter Olympics
// medal dashboard.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/medailles/internal/adapters/loader"
	service "github.com/okian/medailles/internal/app"
	"github.com/okian/medailles/internal/config"
	"github.com/okian/medailles/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		// Use stderr since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// globalFlags override configuration for every subcommand.
type globalFlags struct {
	data     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	var gf globalFlags
	root := &cobra.Command{
		Use:   "medailles",
		Short: "France Winter Olympics medal dashboard",
		Long: `Build the France Winter Olympics medal dashboard from pre-computed JSON.

Subcommands:
  build   - Render index.html, static assets and chart images
  serve   - Serve the site, rebuilding it periodically
  export  - Render one chart as a composed PNG`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&gf.data, "data", "", "Data directory or http(s) base URL (overrides data_source)")
	root.PersistentFlags().StringVar(&gf.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides log_level)")

	root.AddCommand(newBuildCmd(&gf), newServeCmd(&gf), newExportCmd(&gf))
	return root
}

// setup loads the configuration (defaults -> optional file -> env -> flags)
// and wires the service the way every subcommand needs it.
func setup(ctx context.Context, gf *globalFlags, outputDir string) (*config.Config, *service.Service, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if gf.data != "" {
		cfg.DataSource = gf.data
	}
	if gf.logLevel != "" {
		cfg.LogLevel = gf.logLevel
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	if err := logger.Init(logger.WithFormat(logger.Format(cfg.LogFormat))); err != nil {
		return nil, nil, err
	}
	log := logger.Get()
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	l, err := loader.New(cfg.DataSource, loader.WithTimeout(cfg.HTTPTimeout()))
	if err != nil {
		return nil, nil, err
	}
	svc := service.New(l,
		service.WithLogger(log.Named("service")),
		service.WithResources(cfg.Resources),
		service.WithYears(cfg.ComparisonYears),
		service.WithSiteURL(cfg.SiteURL),
		service.WithOutputDir(cfg.OutputDir),
		service.WithOpacityRange(cfg.OpacityMin, cfg.OpacityMax),
		service.WithHoverTolerance(cfg.HoverTolerancePX),
		service.WithChartSize(cfg.ChartWidth, cfg.ChartHeight),
	)
	return cfg, svc, nil
}

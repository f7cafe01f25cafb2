package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/medailles/internal/adapters/http/site"
	service "github.com/okian/medailles/internal/app"
	"github.com/okian/medailles/pkg/logger"
	"github.com/okian/medailles/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

var errPointer = errors.New("pointer must be DAY:VALUE")

func newBuildCmd(gf *globalFlags) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the dashboard site into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, svc, err := setup(ctx, gf, out)
			if err != nil {
				return err
			}
			d, err := svc.Build(ctx)
			if err != nil {
				return err
			}
			if err := svc.Write(ctx, d, cfg.OutputDir); err != nil {
				return err
			}
			if failed := d.Failed(); len(failed) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "site written to %s; unavailable: %v\n", cfg.OutputDir, failed)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "site written to %s\n", cfg.OutputDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Site directory (overrides output_dir)")
	return cmd
}

func newServeCmd(gf *globalFlags) *cobra.Command {
	var (
		out  string
		addr string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the site, serve it and rebuild it periodically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, svc, err := setup(ctx, gf, out)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return serve(ctx, cfg.Addr, cfg.OutputDir, site.NewRefresher(svc, cfg.RefreshInterval()))
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Site directory (overrides output_dir)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides addr)")
	return cmd
}

func serve(ctx context.Context, addr, dir string, refresher *site.Refresher) error {
	log := logger.Get()

	// A failed first build still serves whatever site is already on disk.
	_ = refresher.Refresh(ctx)
	go refresher.Run(ctx)
	go startSystemMetricsUpdater(ctx)

	mux := http.NewServeMux()
	site.NewServer(dir, refresher).Register(ctx, mux)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", addr), logger.String("dir", dir))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%w: %w", site.ErrServe, err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return fmt.Errorf("%w: %w", site.ErrServe, err)
	}
	log.Info(ctx, "server stopped")
	return nil
}

// startSystemMetricsUpdater refreshes the process gauges until ctx ends.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}

func newExportCmd(gf *globalFlags) *cobra.Command {
	var (
		out       string
		highlight int
		pointer   string
	)
	cmd := &cobra.Command{
		Use:   "export <chart-id>",
		Short: "Render one chart as a composed PNG",
		Long: `Render one chart with its title, subtitle and watermark.

Chart ids: ` + strings.Join(service.ChartIDs(), ", ") + `

--highlight YEAR renders a comparison chart with that year's line highlighted.
--pointer DAY:VALUE renders it as if the pointer hovered that data position.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: service.ChartIDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := service.ExportOptions{HighlightYear: highlight}
			if pointer != "" {
				p, err := parsePointer(pointer)
				if err != nil {
					return err
				}
				opts.Pointer = &p
			}

			_, svc, err := setup(ctx, gf, "")
			if err != nil {
				return err
			}
			d, err := svc.Build(ctx)
			if err != nil {
				return err
			}
			e, err := svc.Export(ctx, d, args[0], opts)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(out, 0o755); err != nil {
				return err
			}
			path := filepath.Join(out, e.Filename)
			if err := os.WriteFile(path, e.Data, 0o644); err != nil { //nolint:gosec // public image
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", ".", "Directory to write the image into")
	cmd.Flags().IntVar(&highlight, "highlight", 0, "Year whose line is highlighted")
	cmd.Flags().StringVar(&pointer, "pointer", "", "Hover position as DAY:VALUE")
	cmd.MarkFlagsMutuallyExclusive("highlight", "pointer")
	return cmd
}

// parsePointer reads "DAY:VALUE", e.g. "4:2.5".
func parsePointer(s string) (service.Pointer, error) {
	day, value, ok := strings.Cut(s, ":")
	if !ok {
		return service.Pointer{}, fmt.Errorf("%w: %q", errPointer, s)
	}
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil || d < 0 {
		return service.Pointer{}, fmt.Errorf("%w: %q", errPointer, s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return service.Pointer{}, fmt.Errorf("%w: %q", errPointer, s)
	}
	return service.Pointer{Day: d, Value: v}, nil
}

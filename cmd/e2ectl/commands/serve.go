package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/autosar-go/e2e"
	"github.com/autosar-go/e2e/internal/config"
	"github.com/autosar-go/e2e/internal/e2emetrics"
)

// serveCmd runs a long-lived metrics endpoint, wiring the configured
// profile bank's counters through internal/e2emetrics so external
// tooling can track check outcomes without re-running e2ectl per call.
//
// The one-shot protect/check/check-dir commands run and exit as
// separate processes, so they never share this process's Registry —
// serve's own --watch-dir loop is the only source of real
// CheckOutcomes/ConstructErrors traffic on the /metrics endpoint it
// exposes. Nothing in this process calls Protect, so ProtectErrors stays
// at zero.
func serveCmd() *cobra.Command {
	var watchProfile, watchDir string
	var watchInterval time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Prometheus /metrics endpoint, optionally watching a directory of captured buffers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if watchDir != "" && watchProfile == "" {
				return fmt.Errorf("--watch-dir requires --watch-profile")
			}
			return runServe(cmd.Context(), loadedConfig, watchProfile, watchDir, watchInterval)
		},
	}

	cmd.Flags().StringVar(&watchProfile, "watch-profile", "", "named profile to Check arriving capture files against")
	cmd.Flags().StringVar(&watchDir, "watch-dir", "", "directory polled for new capture files; each is Check'd against --watch-profile and recorded as real metrics traffic")
	cmd.Flags().DurationVar(&watchInterval, "watch-interval", 2*time.Second, "poll interval for --watch-dir")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, watchProfile, watchDir string, watchInterval time.Duration) error {
	logger := newLogger(cfg.Log)

	reg := prometheus.NewRegistry()
	collector := e2emetrics.NewCollector(reg)

	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening",
			slog.String("addr", cfg.Metrics.Addr),
			slog.String("path", cfg.Metrics.Path),
		)
		lc := net.ListenConfig{}
		ln, err := lc.Listen(context.Background(), "tcp", cfg.Metrics.Addr)
		if err != nil {
			errCh <- fmt.Errorf("listen on %s: %w", cfg.Metrics.Addr, err)
			return
		}
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve on %s: %w", cfg.Metrics.Addr, err)
			return
		}
		errCh <- nil
	}()

	if watchDir != "" {
		pc, err := findProfileConfig(cfg, watchProfile)
		if err != nil {
			return err
		}
		go watchCaptures(ctx, logger, collector, pc, watchDir, watchInterval)
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down metrics server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// watchCaptures polls dir for capture files this process has not yet
// seen and Checks each against a single persistent profile instance
// (spec §5's single-writer discipline: one instance owns the whole
// arriving stream, the same as a live session rather than check-dir's
// independent-capture treatment), recording every outcome into
// collector so serve's /metrics endpoint reflects real traffic.
func watchCaptures(ctx context.Context, logger *slog.Logger, collector *e2emetrics.Collector, pc config.ProfileConfig, dir string, interval time.Duration) {
	profile, err := buildProfile(pc)
	if err != nil {
		kind := "unknown"
		var cfgErr *e2e.ConfigError
		if errors.As(err, &cfgErr) {
			kind = cfgErr.Kind.String()
		}
		collector.RecordConstructError(pc.Name, kind)
		logger.Error("watch-dir: failed to construct profile",
			slog.String("profile", pc.Name), slog.Any("error", err))
		return
	}

	seen := make(map[string]bool)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			entries, err := os.ReadDir(dir)
			if err != nil {
				logger.Warn("watch-dir: read dir failed", slog.String("dir", dir), slog.Any("error", err))
				continue
			}
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				if !e.IsDir() && !seen[e.Name()] {
					names = append(names, e.Name())
				}
			}
			sort.Strings(names)

			for _, name := range names {
				seen[name] = true
				buf, err := os.ReadFile(filepath.Join(dir, name))
				if err != nil {
					logger.Warn("watch-dir: read file failed", slog.String("file", name), slog.Any("error", err))
					continue
				}
				status := profile.Check(buf)
				collector.RecordCheck(pc.Name, status.String())
				logger.Debug("watch-dir: checked capture",
					slog.String("file", name), slog.String("status", status.String()))
			}
		}
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: config.ParseLogLevel(cfg.Level)}
	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

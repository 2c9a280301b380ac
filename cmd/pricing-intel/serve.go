// cmd/pricing-intel/serve.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pricing-intel/internal/api"
	"pricing-intel/internal/common/camunda"
	"pricing-intel/internal/common/config"
	piq "pricing-intel/internal/workers/pricing/pricing-intel-query"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and, when enabled, the Zeebe job worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	a, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	a.zap.Info("Starting pricing intel service...",
		zap.String("dataset", a.cfg.Warehouse.Dataset),
		zap.String("window", a.cfg.Analysis.WindowStart+".."+a.cfg.Analysis.WindowEnd),
	)

	// --- Zeebe worker ---
	var (
		zeebe  *camunda.Client
		worker *camunda.CamundaWorker
	)
	if a.cfg.Camunda.Enabled && config.IsWorkerEnabled(a.cfg, piq.TaskType) {
		err = retryWithBackoff(func() error {
			var err error
			zeebe, err = camunda.NewClientWithConfig(camunda.ConfigFromApp(a.cfg.Camunda))
			return err
		}, 10, 2*time.Second, a.zap, "Zeebe client initialization")
		if err != nil {
			return err
		}
		wcfg := config.GetWorkerConfig(a.cfg, piq.TaskType)
		worker = camunda.NewWorker(zeebe.GetClient(), piq.TaskType, wcfg.MaxJobsActive,
			config.GetDuration(wcfg.Timeout), a.handler, a.log)
	}

	// --- HTTP API ---
	srv := api.NewServer(a.cfg.Server, a.handler, a.executor, a.log,
		api.WithPoolStats(a.warehouse.Stats)).HTTPServer()
	errCh := make(chan error, 1)
	go func() {
		a.zap.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigCh:
		a.zap.Info("Shutdown signal received, stopping...")
	case err = <-errCh:
		a.zap.Error("HTTP server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		a.zap.Error("Error stopping HTTP server", zap.Error(shutdownErr))
	}
	if worker != nil {
		worker.Stop(shutdownCtx)
	}
	if zeebe != nil {
		if closeErr := zeebe.Close(); closeErr != nil {
			a.zap.Error("Error closing Zeebe client", zap.Error(closeErr))
		}
	}

	a.zap.Info("Pricing intel service stopped gracefully")
	return err
}

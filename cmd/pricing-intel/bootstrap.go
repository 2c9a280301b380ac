// cmd/pricing-intel/bootstrap.go
package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pricing-intel/internal/common/aws"
	"pricing-intel/internal/common/config"
	"pricing-intel/internal/common/database"
	"pricing-intel/internal/common/logger"
	"pricing-intel/internal/common/observability"
	"pricing-intel/internal/pricing/warehouse"
	piq "pricing-intel/internal/workers/pricing/pricing-intel-query"
)

// app holds everything a command needs to run requests.
type app struct {
	cfg       *config.Config
	zap       *zap.Logger
	log       logger.Logger
	obs       *observability.Observability
	warehouse *database.WarehouseClient
	executor  *warehouse.SQLExecutor
	handler   *piq.Handler
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// bootstrap wires config, logging, tracing and the warehouse. The warehouse
// is retried with backoff since it may still be starting.
func bootstrap(ctx context.Context, withObservability bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	a := &app{
		cfg: cfg,
		zap: zapLog,
		log: logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
			"service":     cfg.App.Name,
			"environment": cfg.App.Environment,
		}),
	}

	if withObservability {
		a.obs, err = observability.New(cfg.Observability.ServiceName,
			observability.WithSampleRatio(cfg.Observability.TraceSampleRatio))
		if err != nil {
			return nil, fmt.Errorf("observability init failed: %w", err)
		}
	}

	err = retryWithBackoff(func() error {
		wh, err := database.NewWarehouse(cfg.Warehouse)
		if err != nil {
			return err
		}
		if err := wh.Ping(ctx); err != nil {
			wh.Close()
			return err
		}
		a.warehouse = wh
		return nil
	}, 5, 2*time.Second, zapLog, "warehouse connection")
	if err != nil {
		a.close(context.Background())
		return nil, err
	}
	a.executor = warehouse.NewSQLExecutor(a.warehouse.DB, a.log)

	hcfg, err := piq.LoadConfig(cfg)
	if err != nil {
		a.close(context.Background())
		return nil, err
	}

	opts := []piq.Option{piq.WithObservability(a.obs)}
	if cfg.Notifications.SNS.Enabled {
		publisher, err := aws.NewAlertPublisher(ctx, cfg.Notifications.SNS.Region, cfg.Notifications.SNS.TopicARN)
		if err != nil {
			a.close(context.Background())
			return nil, fmt.Errorf("sns publisher init failed: %w", err)
		}
		opts = append(opts, piq.WithAlertPublisher(publisher))
		a.log.Info("alert fan-out enabled", map[string]interface{}{"topicArn": cfg.Notifications.SNS.TopicARN})
	}

	a.handler, err = piq.NewHandler(hcfg, cfg.Thresholds, a.executor, a.log, opts...)
	if err != nil {
		a.close(context.Background())
		return nil, err
	}
	return a, nil
}

func (a *app) close(ctx context.Context) {
	if a.warehouse != nil {
		if err := a.warehouse.Close(); err != nil {
			a.zap.Error("error closing warehouse", zap.Error(err))
		}
	}
	if a.obs != nil {
		if err := a.obs.Shutdown(ctx); err != nil {
			a.zap.Error("error shutting down observability", zap.Error(err))
		}
	}
	_ = a.zap.Sync()
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

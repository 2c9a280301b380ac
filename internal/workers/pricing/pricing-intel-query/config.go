// internal/workers/pricing/pricing-intel-query/config.go
package pricingintelquery

import (
	"fmt"
	"time"

	"pricing-intel/internal/common/config"
	"pricing-intel/internal/pricing/queries"
)

type Config struct {
	Window       queries.Window
	DefaultLimit int
	MaxLimit     int
	ByteBudget   int64
	Dataset      string
	Location     string
	Timeout      time.Duration
}

// LoadConfig derives the handler settings from the application config.
func LoadConfig(cfg *config.Config) (*Config, error) {
	window, err := queries.ParseWindow(cfg.Analysis.WindowStart, cfg.Analysis.WindowEnd)
	if err != nil {
		return nil, fmt.Errorf("analysis window: %w", err)
	}

	timeout := config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout)
	if wq := config.GetDuration(cfg.Warehouse.QueryTimeout); wq > timeout {
		timeout = wq
	}

	return &Config{
		Window:       window,
		DefaultLimit: cfg.Analysis.DefaultLimit,
		MaxLimit:     cfg.Analysis.MaxLimit,
		ByteBudget:   cfg.Warehouse.ByteBudget,
		Dataset:      cfg.Warehouse.Dataset,
		Location:     cfg.Warehouse.Location,
		Timeout:      timeout,
	}, nil
}

// ClampLimit applies the default and the upper bound. Values below zero are
// passed through unchanged.
func (c *Config) ClampLimit(limit *int) int {
	if limit == nil {
		return c.DefaultLimit
	}
	if *limit > c.MaxLimit {
		return c.MaxLimit
	}
	return *limit
}

// internal/common/database/warehouse.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pricing-intel/internal/common/config"

	_ "github.com/lib/pq"
)

// WarehouseClient wraps the connection pool to the analytics warehouse.
type WarehouseClient struct {
	DB       *sql.DB
	Dataset  string
	Location string
}

// NewWarehouse opens a pooled connection. sql.Open does not dial, so an
// unreachable warehouse surfaces on the first Ping or query.
func NewWarehouse(cfg config.WarehouseConfig) (*WarehouseClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return NewWarehouseFromDB(db, cfg), nil
}

// NewWarehouseFromDB wraps an existing pool, for tests and callers that
// manage the *sql.DB themselves.
func NewWarehouseFromDB(db *sql.DB, cfg config.WarehouseConfig) *WarehouseClient {
	return &WarehouseClient{
		DB:       db,
		Dataset:  cfg.Dataset,
		Location: cfg.Location,
	}
}

// Ping tests the warehouse connection
func (c *WarehouseClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the pool
func (c *WarehouseClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Stats reports pool usage, surfaced on the readiness probe.
func (c *WarehouseClient) Stats() map[string]interface{} {
	s := c.DB.Stats()
	return map[string]interface{}{
		"open_connections": s.OpenConnections,
		"in_use":           s.InUse,
		"idle":             s.Idle,
		"wait_count":       s.WaitCount,
	}
}

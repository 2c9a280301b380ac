// internal/pricing/warehouse/executor.go
package warehouse

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/lib/pq"

	apperrors "pricing-intel/internal/common/errors"
	"pricing-intel/internal/common/logger"
	"pricing-intel/internal/pricing/queries"
)

const (
	MiB int64 = 1024 * 1024

	// MinBilledBytes is charged for any query that scans data.
	MinBilledBytes = 10 * MiB
)

var ErrUnboundQuery = errors.New("query has unbound parameters")

// ExecOptions carries the per-call limits and the labels attached to the
// statement.
type ExecOptions struct {
	ByteBudget int64
	Labels     map[string]string
}

// Result is the decoded row set plus execution metadata.
type Result struct {
	Records        []map[string]interface{}
	BytesProcessed int64
	BytesBilled    int64
	CacheHit       bool
	Duration       time.Duration
}

// Executor runs one parameterised analytical query.
type Executor interface {
	Execute(ctx context.Context, q queries.Query, opts ExecOptions) (*Result, error)
}

// SQLExecutor runs queries on a Postgres compatible warehouse.
type SQLExecutor struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSQLExecutor(db *sql.DB, log logger.Logger) *SQLExecutor {
	return &SQLExecutor{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "warehouse"}),
	}
}

// Execute estimates the scan, refuses it when it would exceed the byte
// budget, then runs the statement and returns every row as a column map.
func (e *SQLExecutor) Execute(ctx context.Context, q queries.Query, opts ExecOptions) (*Result, error) {
	if !q.Bound() {
		return nil, apperrors.NewInternalError(fmt.Errorf("%w: %s", ErrUnboundQuery, q.Name))
	}

	start := time.Now()
	prefix := labelComment(opts.Labels)
	args := q.Args()

	estimated, err := e.estimate(ctx, prefix+explainPrefix+q.SQL, args)
	if err != nil {
		return nil, classify(q.Name, err)
	}
	if opts.ByteBudget > 0 && estimated > opts.ByteBudget {
		return nil, apperrors.NewByteBudgetExceededError(q.Name, estimated, opts.ByteBudget)
	}

	e.logger.Debug("executing query", map[string]interface{}{
		"query":          q.Name,
		"estimatedBytes": estimated,
		"byteBudget":     opts.ByteBudget,
	})

	rows, err := e.db.QueryContext(ctx, prefix+q.SQL, args...)
	if err != nil {
		return nil, classify(q.Name, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, classify(q.Name, err)
	}

	return &Result{
		Records:        records,
		BytesProcessed: estimated,
		BytesBilled:    BilledBytes(estimated),
		CacheHit:       false,
		Duration:       time.Since(start),
	}, nil
}

// Ping verifies the warehouse is reachable.
func (e *SQLExecutor) Ping(ctx context.Context) error {
	if err := e.db.PingContext(ctx); err != nil {
		return apperrors.NewWarehouseConnectionFailedError(err)
	}
	return nil
}

func (e *SQLExecutor) estimate(ctx context.Context, stmt string, args []interface{}) (int64, error) {
	var plan []byte
	if err := e.db.QueryRowContext(ctx, stmt, args...).Scan(&plan); err != nil {
		return 0, fmt.Errorf("explain: %w", err)
	}
	return EstimateScanBytes(plan)
}

func scanRecords(rows *sql.Rows) ([]map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	records := []map[string]interface{}{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		record := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			// numeric and text columns arrive as bytes
			if b, ok := values[i].([]byte); ok {
				record[col] = string(b)
				continue
			}
			record[col] = values[i]
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// BilledBytes rounds a scan up to whole MiB with a per query minimum.
func BilledBytes(processed int64) int64 {
	if processed <= 0 {
		return 0
	}
	billed := (processed + MiB - 1) / MiB * MiB
	if billed < MinBilledBytes {
		return MinBilledBytes
	}
	return billed
}

func classify(queryType string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperrors.NewQueryTimeoutError(queryType, err)
	case isConnectionError(err):
		return apperrors.NewWarehouseConnectionFailedError(err)
	case isRejection(err):
		return apperrors.NewWarehouseQueryRejectedError(queryType, err)
	default:
		return apperrors.NewWarehouseQueryFailedError(queryType, err)
	}
}

// isRejection reports errors that repeat on every attempt: class 22 data
// exceptions (a negative LIMIT among them) and class 42 syntax or access
// errors.
func isRejection(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code.Class() {
	case "22", "42":
		return true
	}
	return false
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// class 08: connection exception
		return pqErr.Code.Class() == "08"
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

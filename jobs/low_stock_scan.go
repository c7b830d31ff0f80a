package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LowStockScanJob flags products whose stock fell to or below the
// configured threshold so the back office can reorder.
type LowStockScanJob struct {
	Pool   *pgxpool.Pool
	Logger *slog.Logger
}

// NewLowStockScanJob wires dependencies for the scan handler.
func NewLowStockScanJob(pool *pgxpool.Pool, logger *slog.Logger) *LowStockScanJob {
	return &LowStockScanJob{Pool: pool, Logger: logger}
}

type lowStockRow struct {
	ID    string
	Name  string
	Stock int64
}

// Handle processes low stock scan tasks.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Pool == nil {
		return errors.New("low stock scan: handler not configured")
	}
	var payload LowStockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Threshold <= 0 {
		payload.Threshold = 5
	}

	logger := j.logger()
	start := time.Now()

	rows, err := j.Pool.Query(ctx, `SELECT id, name, stock FROM products WHERE stock <= $1 ORDER BY stock, name`, payload.Threshold)
	if err != nil {
		logger.Error("query low stock", slog.Any("error", err))
		return err
	}
	defer rows.Close()

	var flagged []lowStockRow
	for rows.Next() {
		var p lowStockRow
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock); err != nil {
			return err
		}
		flagged = append(flagged, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, p := range flagged {
		logger.Warn("low stock",
			slog.String("product_id", p.ID),
			slog.String("name", p.Name),
			slog.Int64("stock", p.Stock),
		)
	}
	logger.Info("completed low stock scan",
		slog.Int64("threshold", payload.Threshold),
		slog.Int("flagged", len(flagged)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *LowStockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskLowStockScan))
	}
	return slog.Default().With(slog.String("job", TaskLowStockScan))
}

package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportWarmup pre-populates the sales report cache.
	TaskReportWarmup = "report:warmup"
	// TaskLowStockScan flags products running out of stock.
	TaskLowStockScan = "stock:low_scan"
)

// ReportWarmupPayload selects which report periods to warm.
type ReportWarmupPayload struct {
	Periods []string `json:"periods"`
}

// NewReportWarmupTask constructs an Asynq task for cache warmup.
func NewReportWarmupTask(periods ...string) (*asynq.Task, error) {
	data, err := json.Marshal(ReportWarmupPayload{Periods: periods})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarmup, data), nil
}

// LowStockScanPayload sets the stock threshold for the scan.
type LowStockScanPayload struct {
	Threshold int64 `json:"threshold"`
}

// NewLowStockScanTask constructs an Asynq task for the stock scan.
func NewLowStockScanTask(threshold int64) (*asynq.Task, error) {
	data, err := json.Marshal(LowStockScanPayload{Threshold: threshold})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, data), nil
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueReportWarmup enqueues a report cache warmup task.
func (c *Client) EnqueueReportWarmup(ctx context.Context, periods ...string) (*asynq.TaskInfo, error) {
	task, err := NewReportWarmupTask(periods...)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// EnqueueLowStockScan enqueues a stock scan task.
func (c *Client) EnqueueLowStockScan(ctx context.Context, threshold int64) (*asynq.TaskInfo, error) {
	task, err := NewLowStockScanTask(threshold)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}

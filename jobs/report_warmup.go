package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/kasira-pos/kasira-pos/internal/report"
)

// ReportWarmupJob pre-populates the sales report cache so the first
// dashboard hit after a cache bump does not pay the aggregation cost.
type ReportWarmupJob struct {
	Reports *report.Service
	Logger  *slog.Logger
}

// NewReportWarmupJob wires dependencies for the warmup handler.
func NewReportWarmupJob(reports *report.Service, logger *slog.Logger) *ReportWarmupJob {
	return &ReportWarmupJob{Reports: reports, Logger: logger}
}

// Handle processes report warmup tasks.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("report warmup: handler not configured")
	}
	var payload ReportWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if len(payload.Periods) == 0 {
		payload.Periods = []string{
			string(report.PeriodDaily),
			string(report.PeriodWeekly),
			string(report.PeriodMonthly),
			string(report.PeriodYearly),
		}
	}

	logger := j.logger()
	start := time.Now()
	for _, raw := range payload.Periods {
		period := report.Period(raw)
		if !period.Valid() {
			logger.Warn("skipping unknown report period", slog.String("period", raw))
			continue
		}
		if _, err := j.Reports.Sales(ctx, period); err != nil {
			logger.Error("warm report period", slog.String("period", raw), slog.Any("error", err))
			return err
		}
	}
	logger.Info("completed report warmup", slog.Int("periods", len(payload.Periods)), slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *ReportWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskReportWarmup))
	}
	return slog.Default().With(slog.String("job", TaskReportWarmup))
}

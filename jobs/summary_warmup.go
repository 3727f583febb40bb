package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/billbook/billbook/internal/ledger"
)

// SummaryWarmupJob re-populates the dashboard summary cache so the next
// dashboard request is served warm.
type SummaryWarmupJob struct {
	Ledger *ledger.Service
	Logger *slog.Logger
}

// NewSummaryWarmupJob wires dependencies for the warmup handler.
func NewSummaryWarmupJob(ledgerSvc *ledger.Service, logger *slog.Logger) *SummaryWarmupJob {
	return &SummaryWarmupJob{Ledger: ledgerSvc, Logger: logger}
}

// Handle processes summary warmup tasks.
func (j *SummaryWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Ledger == nil {
		return errors.New("summary warmup: handler not configured")
	}
	var payload SummaryWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger().With(slog.String("reason", payload.Reason))
	summary, err := j.Ledger.Summary(ctx)
	if err != nil {
		logger.Error("summary warmup", slog.Any("error", err))
		return err
	}
	logger.Info("summary cache warmed", slog.Int("transactions", summary.TotalTransactions))
	return nil
}

func (j *SummaryWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

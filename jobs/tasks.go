package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSummaryWarmup rebuilds the dashboard summary cache.
	TaskSummaryWarmup = "ledger:summary_warmup"
)

// SummaryWarmupPayload carries the reason a warmup was requested.
type SummaryWarmupPayload struct {
	Reason string `json:"reason,omitempty"`
}

// NewSummaryWarmupTask constructs an Asynq task.
func NewSummaryWarmupTask(payload SummaryWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSummaryWarmup, data), nil
}

// Client enqueues Billbook background tasks.
type Client struct {
	asynq *asynq.Client
}

// NewClient wraps an Asynq client.
func NewClient(c *asynq.Client) *Client {
	return &Client{asynq: c}
}

// EnqueueSummaryWarmup schedules a dashboard summary rebuild.
func (c *Client) EnqueueSummaryWarmup(ctx context.Context) error {
	if c == nil || c.asynq == nil {
		return nil
	}
	task, err := NewSummaryWarmupTask(SummaryWarmupPayload{Reason: "ledger mutation"})
	if err != nil {
		return err
	}
	_, err = c.asynq.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

package worker

import (
	"context"
	"encoding/json"

	"github.com/souqline/internal/logger"
	"github.com/souqline/internal/provider"
	"github.com/souqline/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles asynchronous tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register registers task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskNotificationDispatch, c.handleNotificationDispatch)
}

func (c *Consumer) handleNotificationDispatch(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_notification_dispatch_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.NotificationDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_notification_dispatch_unmarshal_failed", "error", err)
		return err
	}
	if payload.RecipientRole == "" || payload.Kind == "" {
		logger.Debugw("worker_notification_dispatch_skip_invalid_payload",
			"recipient_role", payload.RecipientRole,
			"kind", payload.Kind,
		)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_notification_dispatch_skip_service_nil", "kind", payload.Kind)
		return nil
	}
	if err := c.NotificationService.Persist(payload); err != nil {
		logger.Warnw("worker_notification_dispatch_persist_failed",
			"recipient_role", payload.RecipientRole,
			"recipient_id", payload.RecipientID,
			"kind", payload.Kind,
			"error", err,
		)
		return err
	}
	return nil
}

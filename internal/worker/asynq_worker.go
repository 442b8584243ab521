package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/xxx-ad-poster/internal/logger"
	"github.com/xxx-ad-poster/internal/provider"
	"github.com/xxx-ad-poster/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskWebhookDeliver, c.handleWebhookDeliver)
}

// handleWebhookDeliver 投递一条出站 Webhook。
// 投递失败返回错误交给 asynq 按退避重试；载荷损坏直接丢弃。
func (c *Consumer) handleWebhookDeliver(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_webhook_deliver_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.WebhookDeliverPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_webhook_deliver_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.URL) == "" || len(payload.Body) == 0 {
		logger.Debugw("worker_webhook_deliver_skip_invalid_payload", "event", payload.Event)
		return nil
	}
	if c.WebhookService == nil {
		logger.Warnw("worker_webhook_deliver_skip_service_nil", "event", payload.Event)
		return nil
	}
	if err := c.WebhookService.Deliver(ctx, payload.URL, payload.Body); err != nil {
		logger.Warnw("worker_webhook_deliver_failed",
			"event", payload.Event,
			"url", payload.URL,
			"error", err,
		)
		return err
	}
	logger.Infow("worker_webhook_delivered", "event", payload.Event, "url", payload.URL)
	return nil
}

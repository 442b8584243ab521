package queue

import (
	"encoding/json"

	"github.com/xxx-ad-poster/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskWebhookDeliver 出站 Webhook 投递任务
	TaskWebhookDeliver = constants.TaskWebhookDeliver
)

// WebhookDeliverPayload Webhook 投递任务载荷。
// Body 为已序列化的事件 JSON，入队前定稿，重试时原样重发。
type WebhookDeliverPayload struct {
	URL   string          `json:"url"`
	Event string          `json:"event"`
	Body  json.RawMessage `json:"body"`
}

// NewWebhookDeliverTask 创建 Webhook 投递任务
func NewWebhookDeliverTask(payload WebhookDeliverPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWebhookDeliver, body), nil
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xxx-ad-poster/internal/config"
	"github.com/xxx-ad-poster/internal/logger"
	"github.com/xxx-ad-poster/internal/queue"
)

const defaultWebhookTimeout = 3 * time.Second

// WebhookService 出站事件通知服务。
// 队列启用时经 asynq 投递（失败自动重试），否则在后台直接发送一次。
// 通知永远不阻塞、不回滚主写入。
type WebhookService struct {
	cfg         *config.WebhookConfig
	queueClient *queue.Client
	httpClient  *http.Client
}

// NewWebhookService 创建 Webhook 服务
func NewWebhookService(cfg *config.WebhookConfig, queueClient *queue.Client) *WebhookService {
	timeout := defaultWebhookTimeout
	if cfg != nil && cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &WebhookService{
		cfg:         cfg,
		queueClient: queueClient,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Enabled 判断是否配置了通知地址
func (s *WebhookService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled && strings.TrimSpace(s.cfg.URL) != ""
}

// Notify 发送事件通知，事件体为 {"event": <name>, ...fields}
func (s *WebhookService) Notify(event string, fields map[string]interface{}) {
	if !s.Enabled() {
		return
	}

	payload := make(map[string]interface{}, len(fields)+1)
	payload["event"] = event
	for k, v := range fields {
		payload[k] = v
	}
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Warnw("webhook_payload_marshal_failed", "event", event, "error", err)
		return
	}

	url := strings.TrimSpace(s.cfg.URL)
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueWebhookDeliver(queue.WebhookDeliverPayload{
			URL:   url,
			Event: event,
			Body:  body,
		})
		if err != nil {
			logger.Warnw("webhook_enqueue_failed", "event", event, "error", err)
		}
		return
	}

	go func() {
		if err := s.Deliver(context.Background(), url, body); err != nil {
			logger.Warnw("webhook_deliver_failed", "event", event, "url", url, "error", err)
		}
	}()
}

// Deliver 执行一次 HTTP 投递（worker 重试时也走这里）
func (s *WebhookService) Deliver(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

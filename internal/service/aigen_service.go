package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xxx-ad-poster/internal/config"
	"github.com/xxx-ad-poster/internal/constants"
)

const defaultAIGenTimeout = 8 * time.Second

// AIGenRequest 一次外部生成请求。
// 凭证随请求携带，服务端不落盘；Model 留空时取配置默认值。
type AIGenRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
}

// AIGenService 外部文案生成服务。
// 三个提供方的返回统一归一化为 AdCopy；任何失败都由调用方回退到规则生成器。
type AIGenService struct {
	cfg        *config.AIGenConfig
	httpClient *http.Client
}

// NewAIGenService 创建外部生成服务
func NewAIGenService(cfg *config.AIGenConfig) *AIGenService {
	timeout := defaultAIGenTimeout
	if cfg != nil && cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &AIGenService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Generate 调用指定提供方生成文案
func (s *AIGenService) Generate(ctx context.Context, brief AdBrief, req AIGenRequest) (AdCopy, error) {
	if s == nil || s.cfg == nil {
		return AdCopy{}, errors.New("生成服务未初始化")
	}
	prompt := buildGenPrompt(brief)

	switch strings.ToLower(strings.TrimSpace(req.Provider)) {
	case constants.AIGenProviderOpenAI:
		return s.generateOpenAI(ctx, prompt, req)
	case constants.AIGenProviderAnthropic:
		return s.generateAnthropic(ctx, prompt, req)
	case constants.AIGenProviderOllama:
		return s.generateOllama(ctx, prompt, req)
	default:
		return AdCopy{}, fmt.Errorf("未知的生成提供方: %s", req.Provider)
	}
}

// buildGenPrompt 将简报序列化为提示词，要求只返回 JSON 对象
func buildGenPrompt(brief AdBrief) string {
	var b strings.Builder
	b.WriteString("You write short, tasteful, non-explicit ad copy for adult-oriented affiliate offers. ")
	b.WriteString("Focus on benefits, privacy and discretion. Never use explicit language.\n\n")
	b.WriteString("Brief:\n")
	fmt.Fprintf(&b, "- Offer name: %s\n", brief.OfferName)
	fmt.Fprintf(&b, "- Offer type: %s\n", brief.OfferType)
	fmt.Fprintf(&b, "- Target audience: %s\n", brief.Audience)
	fmt.Fprintf(&b, "- Main promise: %s\n", brief.Promise)
	fmt.Fprintf(&b, "- Hook style: %s\n\n", brief.HookStyle)
	b.WriteString(`Respond with only a JSON object: {"headline": "...", "body": "...", "cta": "..."}`)
	return b.String()
}

func (s *AIGenService) generateOpenAI(ctx context.Context, prompt string, req AIGenRequest) (AdCopy, error) {
	if strings.TrimSpace(req.APIKey) == "" {
		return AdCopy{}, errors.New("openai 需要 api_key")
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = s.cfg.OpenAI.Model
	}

	payload := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	endpoint := strings.TrimRight(s.cfg.OpenAI.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + req.APIKey}

	raw, err := s.postJSON(ctx, endpoint, headers, payload)
	if err != nil {
		return AdCopy{}, err
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return AdCopy{}, fmt.Errorf("openai 响应解析失败: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return AdCopy{}, errors.New("openai 响应没有候选结果")
	}
	return normalizeGenerated(parsed.Choices[0].Message.Content)
}

func (s *AIGenService) generateAnthropic(ctx context.Context, prompt string, req AIGenRequest) (AdCopy, error) {
	if strings.TrimSpace(req.APIKey) == "" {
		return AdCopy{}, errors.New("anthropic 需要 api_key")
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = s.cfg.Anthropic.Model
	}

	payload := map[string]interface{}{
		"model":      model,
		"max_tokens": 512,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	endpoint := strings.TrimRight(s.cfg.Anthropic.BaseURL, "/") + "/v1/messages"
	headers := map[string]string{
		"x-api-key":         req.APIKey,
		"anthropic-version": s.cfg.Anthropic.Version,
	}

	raw, err := s.postJSON(ctx, endpoint, headers, payload)
	if err != nil {
		return AdCopy{}, err
	}

	var parsed struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return AdCopy{}, fmt.Errorf("anthropic 响应解析失败: %w", err)
	}
	if len(parsed.Content) == 0 {
		return AdCopy{}, errors.New("anthropic 响应没有内容块")
	}
	return normalizeGenerated(parsed.Content[0].Text)
}

func (s *AIGenService) generateOllama(ctx context.Context, prompt string, req AIGenRequest) (AdCopy, error) {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = s.cfg.Ollama.Model
	}

	payload := map[string]interface{}{
		"model":  model,
		"prompt": prompt,
		"stream": false,
		"format": "json",
	}
	endpoint := strings.TrimRight(s.cfg.Ollama.BaseURL, "/") + "/api/generate"

	raw, err := s.postJSON(ctx, endpoint, nil, payload)
	if err != nil {
		return AdCopy{}, err
	}

	var parsed struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return AdCopy{}, fmt.Errorf("ollama 响应解析失败: %w", err)
	}
	return normalizeGenerated(parsed.Response)
}

func (s *AIGenService) postJSON(ctx context.Context, endpoint string, headers map[string]string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	return raw, nil
}

// normalizeGenerated 从模型返回文本里提取 {headline, body, cta}。
// 兼容包裹在 Markdown 代码块里的 JSON。
func normalizeGenerated(content string) (AdCopy, error) {
	text := strings.TrimSpace(content)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var result AdCopy
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return AdCopy{}, fmt.Errorf("生成结果不是合法 JSON: %w", err)
	}
	result.Headline = strings.TrimSpace(result.Headline)
	result.Body = strings.TrimSpace(result.Body)
	result.CTA = strings.TrimSpace(result.CTA)
	if result.Headline == "" || result.Body == "" || result.CTA == "" {
		return AdCopy{}, errors.New("生成结果缺少必需字段")
	}
	return result, nil
}

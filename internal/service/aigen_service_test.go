package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xxx-ad-poster/internal/config"
	"github.com/xxx-ad-poster/internal/constants"
)

func testBrief() AdBrief {
	return AdBrief{
		OfferName: "NightOwl",
		OfferType: "cams",
		Audience:  "single men",
		Promise:   "have fun",
		HookStyle: constants.HookStyleCuriosity,
	}
}

func TestGenerateOpenAI(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{
					"content": `{"headline":"H","body":"B","cta":"C"}`,
				}},
			},
		})
	}))
	defer server.Close()

	svc := NewAIGenService(&config.AIGenConfig{
		OpenAI: config.AIGenProviderConfig{BaseURL: server.URL, Model: "gpt-4o-mini"},
	})

	copyOut, err := svc.Generate(context.Background(), testBrief(), AIGenRequest{
		Provider: constants.AIGenProviderOpenAI,
		APIKey:   "sk-test",
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if gotPath != "/chat/completions" {
		t.Fatalf("endpoint want /chat/completions got %s", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("authorization header want Bearer sk-test got %s", gotAuth)
	}
	if copyOut.Headline != "H" || copyOut.Body != "B" || copyOut.CTA != "C" {
		t.Fatalf("unexpected copy: %+v", copyOut)
	}
}

func TestGenerateOpenAIRequiresKey(t *testing.T) {
	svc := NewAIGenService(&config.AIGenConfig{})
	if _, err := svc.Generate(context.Background(), testBrief(), AIGenRequest{Provider: constants.AIGenProviderOpenAI}); err == nil {
		t.Fatalf("missing api key should fail")
	}
}

func TestGenerateAnthropicHeaders(t *testing.T) {
	var gotKey, gotVersion string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{
				{"text": "```json\n{\"headline\":\"H\",\"body\":\"B\",\"cta\":\"C\"}\n```"},
			},
		})
	}))
	defer server.Close()

	svc := NewAIGenService(&config.AIGenConfig{
		Anthropic: config.AIGenAnthropicConfig{BaseURL: server.URL, Model: "claude-sonnet", Version: "2023-06-01"},
	})

	copyOut, err := svc.Generate(context.Background(), testBrief(), AIGenRequest{
		Provider: constants.AIGenProviderAnthropic,
		APIKey:   "ak-test",
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if gotKey != "ak-test" || gotVersion != "2023-06-01" {
		t.Fatalf("headers want ak-test/2023-06-01 got %s/%s", gotKey, gotVersion)
	}
	// Markdown 代码块包裹的 JSON 也要能解析
	if copyOut.Headline != "H" {
		t.Fatalf("fenced json should normalize, got %+v", copyOut)
	}
}

func TestGenerateOllama(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"response": `{"headline":"H","body":"B","cta":"C"}`,
		})
	}))
	defer server.Close()

	svc := NewAIGenService(&config.AIGenConfig{
		Ollama: config.AIGenProviderConfig{BaseURL: server.URL, Model: "llama3"},
	})

	// ollama 本地服务不需要 api_key
	copyOut, err := svc.Generate(context.Background(), testBrief(), AIGenRequest{Provider: constants.AIGenProviderOllama})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if copyOut.CTA != "C" {
		t.Fatalf("unexpected copy: %+v", copyOut)
	}
}

func TestGenerateProviderErrors(t *testing.T) {
	badStatus := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer badStatus.Close()

	svc := NewAIGenService(&config.AIGenConfig{
		OpenAI: config.AIGenProviderConfig{BaseURL: badStatus.URL},
	})
	req := AIGenRequest{Provider: constants.AIGenProviderOpenAI, APIKey: "sk-test"}
	if _, err := svc.Generate(context.Background(), testBrief(), req); err == nil {
		t.Fatalf("non-2xx status should fail")
	}

	badJSON := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "not json at all"}},
			},
		})
	}))
	defer badJSON.Close()

	svc = NewAIGenService(&config.AIGenConfig{
		OpenAI: config.AIGenProviderConfig{BaseURL: badJSON.URL},
	})
	if _, err := svc.Generate(context.Background(), testBrief(), req); err == nil {
		t.Fatalf("non-json content should fail")
	}

	missingField := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"headline":"H","body":""}`}},
			},
		})
	}))
	defer missingField.Close()

	svc = NewAIGenService(&config.AIGenConfig{
		OpenAI: config.AIGenProviderConfig{BaseURL: missingField.URL},
	})
	if _, err := svc.Generate(context.Background(), testBrief(), req); err == nil {
		t.Fatalf("missing fields should fail")
	}
}

func TestGenerateUnknownProvider(t *testing.T) {
	svc := NewAIGenService(&config.AIGenConfig{})
	if _, err := svc.Generate(context.Background(), testBrief(), AIGenRequest{Provider: "bard"}); err == nil {
		t.Fatalf("unknown provider should fail")
	}
}

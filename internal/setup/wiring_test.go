package setup

import (
	"context"
	"testing"

	"github.com/povarna/generative-ai-agents/prompt-relay/internal/config"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm/gpt"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RELAY_API_PORT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("REDIS_MAX_RETRIES", "not-a-number")

	cfg := LoadConfig()

	if cfg.Port != "18080" {
		t.Errorf("Expected port 18080, got %s", cfg.Port)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("Expected [*], got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RedisMaxRetries != 5 {
		t.Errorf("Expected default redis retries 5, got %d", cfg.RedisMaxRetries)
	}
	if cfg.RequestStream != "ask-events" || cfg.ResultStream != "ask-results" {
		t.Errorf("Unexpected stream names %s / %s", cfg.RequestStream, cfg.ResultStream)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RELAY_API_PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg := LoadConfig()

	if cfg.Port != "9000" {
		t.Errorf("Expected port 9000, got %s", cfg.Port)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("Expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestNewLLMClient_OpenAI(t *testing.T) {
	cfg := &Config{OpenAIKey: "sk-test"}
	modelCfg := &config.ModelConfig{Provider: config.ProviderOpenAI, ModelID: "gpt-4o-mini", MaxTokens: 512}

	client, err := NewLLMClient(context.Background(), cfg, modelCfg)
	if err != nil {
		t.Fatalf("NewLLMClient failed: %v", err)
	}
	if _, ok := client.(*gpt.Client); !ok {
		t.Errorf("Expected *gpt.Client, got %T", client)
	}
}

func TestNewLLMClient_VertexRequiresProject(t *testing.T) {
	cfg := &Config{}
	modelCfg := &config.ModelConfig{Provider: config.ProviderVertex, ModelID: "gemini-2.5-pro", Region: "us-central1"}

	if _, err := NewLLMClient(context.Background(), cfg, modelCfg); err == nil {
		t.Error("Expected error when GOOGLE_CLOUD_PROJECT is not set")
	}
}

func TestNewLLMClient_UnknownProvider(t *testing.T) {
	if _, err := NewLLMClient(context.Background(), &Config{}, &config.ModelConfig{Provider: "ollama"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

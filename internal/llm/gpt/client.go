package gpt

import (
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm"
)

type Client struct {
	Client  openai.Client
	ModelID string
	Retry   llm.RetryPolicy
}

// NewClient keeps the SDK's own transport retry defaults.
func NewClient(apiKey string, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("OpenAI model ID is required")
	}

	openaiClient := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Client{
		Client:  openaiClient,
		ModelID: model,
		Retry:   llm.DefaultRetryPolicy(),
	}, nil
}

package gpt

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm"
)

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	output, err := c.Client.Chat.Completions.New(ctx, buildParams(c.ModelID, request))
	if err != nil {
		return nil, fmt.Errorf("unable to invoke gpt model: %w", err)
	}

	if len(output.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	choice := output.Choices[0]
	return &llm.LLMResponse{
		Content:    choice.Message.Content,
		StopReason: choice.FinishReason,
	}, nil
}

func (c *Client) InvokeModelWithRetry(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	return llm.WithRetry(ctx, c.Retry, request, c.InvokeModel)
}

func buildParams(modelID string, request llm.LLMRequest) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(request.Prompt),
		},
		MaxCompletionTokens: openai.Int(int64(request.MaxTokens)),
		Temperature:         openai.Float(request.Temperature),
		Model:               openai.ChatModel(modelID),
	}
}

package vertex

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm"
)

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	model := c.Client.GenerativeModel(c.ModelID)
	configureModel(model, request)

	output, err := model.GenerateContent(ctx, genai.Text(request.Prompt))
	if err != nil {
		return nil, fmt.Errorf("unable to invoke gemini model: %w", err)
	}

	return extractResponse(output)
}

func (c *Client) InvokeModelWithRetry(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	return llm.WithRetry(ctx, c.Retry, request, c.InvokeModel)
}

// configureModel applies sampling settings to a per-call model handle.
func configureModel(model *genai.GenerativeModel, request llm.LLMRequest) {
	model.SetTemperature(float32(request.Temperature))
	model.SetMaxOutputTokens(int32(request.MaxTokens))
}

// extractResponse returns the text parts of the first candidate.
func extractResponse(output *genai.GenerateContentResponse) (*llm.LLMResponse, error) {
	if output == nil || len(output.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}

	candidate := output.Candidates[0]
	if candidate.Content == nil {
		return nil, fmt.Errorf("candidate has no content (finish reason: %s)", candidate.FinishReason)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return &llm.LLMResponse{
		Content:    sb.String(),
		StopReason: candidate.FinishReason.String(),
	}, nil
}

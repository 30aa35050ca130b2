package vertex

import (
	"context"
	"fmt"

	"cloud.google.com/go/vertexai/genai"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm"
)

// Client talks to Gemini models on Vertex AI. Project, region and model are
// fixed at construction; credentials come from Application Default Credentials.
type Client struct {
	Client    *genai.Client
	ProjectID string
	Region    string
	ModelID   string
	Retry     llm.RetryPolicy
}

func NewClient(ctx context.Context, projectID string, region string, modelID string) (*Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("google cloud project ID is required")
	}
	if modelID == "" {
		return nil, fmt.Errorf("vertex model ID is required")
	}

	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("unable to create vertex client: %w", err)
	}

	return &Client{
		Client:    client,
		ProjectID: projectID,
		Region:    region,
		ModelID:   modelID,
		Retry:     llm.DefaultRetryPolicy(),
	}, nil
}

func (c *Client) Close() error {
	return c.Client.Close()
}

package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm"
)

type Client struct {
	Client  *bedrockruntime.Client
	ModelID string
	Region  string
	Retry   llm.RetryPolicy
}

func NewClient(ctx context.Context, region string, modelID string) (*Client, error) {
	if modelID == "" {
		return nil, fmt.Errorf("bedrock model ID is required")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &Client{
		Client:  bedrockruntime.NewFromConfig(cfg),
		ModelID: modelID,
		Region:  region,
		Retry:   llm.DefaultRetryPolicy(),
	}, nil
}

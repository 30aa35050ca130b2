package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidRequest  = errors.New("invalid request: prompt is required")
	ErrUpstreamFailure = errors.New("upstream inference failure")
)

// Params are the sampling parameters sent with every prompt.
type Params struct {
	ModelID     string
	MaxTokens   int
	Temperature float64
}

// Service forwards prompts to the client handle. It holds no mutable state
// and is safe for concurrent use.
type Service struct {
	client llm.LLMClient
	params Params
	logger *zerolog.Logger
}

func NewService(client llm.LLMClient, params Params, logger *zerolog.Logger) *Service {
	return &Service{
		client: client,
		params: params,
		logger: logger,
	}
}

func (s *Service) Params() Params {
	return s.params
}

// Ask makes exactly one model call with the prompt as given.
func (s *Service) Ask(ctx context.Context, prompt *string) (string, error) {
	return s.relay(ctx, prompt, s.client.InvokeModel)
}

// AskWithRetry is used by the queue-driven paths, never by the HTTP handler.
func (s *Service) AskWithRetry(ctx context.Context, prompt *string) (string, error) {
	return s.relay(ctx, prompt, s.client.InvokeModelWithRetry)
}

func (s *Service) relay(ctx context.Context, prompt *string, invoke llm.InvokeFunc) (string, error) {
	if prompt == nil {
		return "", ErrInvalidRequest
	}

	start := time.Now()

	response, err := invoke(ctx, llm.LLMRequest{
		Prompt:      *prompt,
		MaxTokens:   s.params.MaxTokens,
		Temperature: s.params.Temperature,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("model", s.params.ModelID).
			Dur("duration", time.Since(start)).
			Msg("model invocation failed")
		return "", fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}
	if response == nil {
		return "", fmt.Errorf("%w: empty response", ErrUpstreamFailure)
	}

	s.logger.Info().
		Str("model", s.params.ModelID).
		Int("prompt_len", len(*prompt)).
		Int("response_len", len(response.Content)).
		Str("stop_reason", response.StopReason).
		Dur("duration", time.Since(start)).
		Msg("prompt relayed")

	return response.Content, nil
}

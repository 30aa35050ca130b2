package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm/mocks"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

var testParams = Params{
	ModelID:     "gemini-2.5-pro",
	MaxTokens:   512,
	Temperature: 0.2,
}

func ptr(s string) *string { return &s }

func TestService_Ask(t *testing.T) {
	upstreamErr := errors.New("rpc error: code = PermissionDenied")

	tests := []struct {
		name         string
		prompt       *string
		expectCall   bool
		response     *llm.LLMResponse
		invokeErr    error
		expectErr    error
		expectResult string
	}{
		{
			name:         "relays prompt and returns text",
			prompt:       ptr("Hello"),
			expectCall:   true,
			response:     &llm.LLMResponse{Content: "Hi there", StopReason: "STOP"},
			expectResult: "Hi there",
		},
		{
			name:         "empty prompt is still forwarded",
			prompt:       ptr(""),
			expectCall:   true,
			response:     &llm.LLMResponse{Content: "?"},
			expectResult: "?",
		},
		{
			name:       "missing prompt - no call",
			prompt:     nil,
			expectCall: false,
			expectErr:  ErrInvalidRequest,
		},
		{
			name:       "upstream failure",
			prompt:     ptr("Hello"),
			expectCall: true,
			invokeErr:  upstreamErr,
			expectErr:  ErrUpstreamFailure,
		},
		{
			name:       "nil response",
			prompt:     ptr("Hello"),
			expectCall: true,
			expectErr:  ErrUpstreamFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockLLMClient(ctrl)

			if tt.expectCall {
				client.EXPECT().
					InvokeModel(gomock.Any(), llm.LLMRequest{
						Prompt:      *tt.prompt,
						MaxTokens:   512,
						Temperature: 0.2,
					}).
					Return(tt.response, tt.invokeErr).
					Times(1)
			}

			service := NewService(client, testParams, testLogger())
			result, err := service.Ask(context.Background(), tt.prompt)

			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("expected error %v, got %v", tt.expectErr, err)
				}
				if tt.invokeErr != nil && !errors.Is(err, tt.invokeErr) {
					t.Errorf("expected upstream cause to be wrapped, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expectResult {
				t.Errorf("expected '%s', got '%s'", tt.expectResult, result)
			}
		})
	}
}

func TestService_AskWithRetry_UsesRetryingCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockLLMClient(ctrl)

	client.EXPECT().
		InvokeModelWithRetry(gomock.Any(), llm.LLMRequest{Prompt: "batch", MaxTokens: 512, Temperature: 0.2}).
		Return(&llm.LLMResponse{Content: "done"}, nil)

	service := NewService(client, testParams, testLogger())
	result, err := service.AskWithRetry(context.Background(), ptr("batch"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "done" {
		t.Errorf("expected 'done', got '%s'", result)
	}
}

func TestService_Ask_PassesContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockLLMClient(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client.EXPECT().
		InvokeModel(ctx, gomock.Any()).
		Return(nil, context.Canceled)

	service := NewService(client, testParams, testLogger())
	_, err := service.Ask(ctx, ptr("Hello"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestService_Ask_ConcurrentRequestsAreIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockLLMClient(ctrl)

	const n = 50
	client.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req llm.LLMRequest) (*llm.LLMResponse, error) {
			return &llm.LLMResponse{Content: "echo:" + req.Prompt}, nil
		}).
		Times(n)

	service := NewService(client, testParams, testLogger())

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			prompt := fmt.Sprintf("prompt-%d", i)
			got, err := service.Ask(context.Background(), &prompt)
			if err != nil {
				errs <- err
				return
			}
			if got != "echo:"+prompt {
				errs <- fmt.Errorf("request %d got %q", i, got)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

package mcpadapter

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm/mocks"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/relay"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*relay.Service, *mocks.MockLLMClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockLLMClient(ctrl)
	logger := zerolog.Nop()

	return relay.NewService(client, relay.Params{ModelID: "gemini-2.5-pro", MaxTokens: 512, Temperature: 0.2}, &logger), client
}

func TestAsk_Success(t *testing.T) {
	service, client := newService(t)

	client.EXPECT().
		InvokeModel(gomock.Any(), llm.LLMRequest{Prompt: "Hello", MaxTokens: 512, Temperature: 0.2}).
		Return(&llm.LLMResponse{Content: "Hi there"}, nil)

	_, out, err := Ask(context.Background(), service, nil, AskInput{Prompt: "Hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Response != "Hi there" {
		t.Errorf("Expected 'Hi there', got '%s'", out.Response)
	}
}

func TestAsk_UpstreamFailureIsGeneric(t *testing.T) {
	service, client := newService(t)

	client.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("AccessDeniedException: account 1234"))

	_, _, err := Ask(context.Background(), service, nil, AskInput{Prompt: "Hello"})
	if !errors.Is(err, relay.ErrUpstreamFailure) {
		t.Fatalf("Expected ErrUpstreamFailure, got %v", err)
	}
	if err.Error() != relay.ErrUpstreamFailure.Error() {
		t.Errorf("Expected generic error, got %q", err.Error())
	}
}

func TestServer_AskToolOverInMemoryTransport(t *testing.T) {
	service, client := newService(t)

	client.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		Return(&llm.LLMResponse{Content: "Hi there"}, nil)

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := NewServer(service, "test")
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect failed: %v", err)
	}
	defer serverSession.Close()

	mcpClient := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := mcpClient.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect failed: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "ask",
		Arguments: map[string]any{"prompt": "Hello"},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got tool error: %+v", result.Content)
	}

	structured, ok := result.StructuredContent.(map[string]any)
	if !ok {
		t.Fatalf("Expected structured content map, got %T", result.StructuredContent)
	}
	if structured["response"] != "Hi there" {
		t.Errorf("Expected response 'Hi there', got %v", structured["response"])
	}
}

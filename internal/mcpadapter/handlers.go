package mcpadapter

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/models"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/relay"
)

// AskInput is the MCP tool input schema (matches the HTTP body).
type AskInput struct {
	Prompt string `json:"prompt" jsonschema:"prompt forwarded unmodified to the model"`
}

func NewServer(service *relay.Service, version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "prompt-relay",
			Version: version,
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask",
		Description: "Send a prompt to the configured LLM and return its response text",
	}, NewAskHandler(service))

	return server
}

// NewAskHandler returns a tool handler bound to the relay service.
// Pass the returned function to mcp.AddTool.
func NewAskHandler(service *relay.Service) func(context.Context, *mcp.CallToolRequest, AskInput) (*mcp.CallToolResult, models.AskResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, models.AskResponse, error) {
		return Ask(ctx, service, req, input)
	}
}

// Ask relays the prompt. Upstream details are not exposed to the tool caller.
func Ask(
	ctx context.Context,
	service *relay.Service,
	req *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, models.AskResponse, error) {
	answer, err := service.Ask(ctx, &input.Prompt)
	if err != nil {
		if errors.Is(err, relay.ErrInvalidRequest) {
			return nil, models.AskResponse{}, relay.ErrInvalidRequest
		}
		return nil, models.AskResponse{}, relay.ErrUpstreamFailure
	}

	return nil, models.AskResponse{Response: answer}, nil
}

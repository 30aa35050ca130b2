package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/mcpadapter"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/setup"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/setup/logger"
)

func main() {
	// Load env
	_ = godotenv.Load()

	// Load Config
	cfg := setup.LoadConfig()

	// stdout belongs to the MCP transport, so logs always go to the stderr console writer
	appLogger := logger.Setup(cfg.LogLevel, "console")

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}
	defer deps.Close()

	server := mcpadapter.NewServer(deps.Relay, "1.0.0")

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			appLogger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		appLogger.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

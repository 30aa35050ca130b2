package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/setup"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/setup/logger"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/stream"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/stream/redis"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load env
	envErr := godotenv.Load()

	cfg := setup.LoadConfig()
	appLogger := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if envErr != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	deps, err := setup.Wire(ctx, cfg, &appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Close()

	redisCfg := redis.NewRedisStreamConfig(
		cfg.RedisAddr,
		cfg.RedisPassword,
		cfg.RequestStream,
		cfg.ResultStream,
		cfg.ConsumerGroup,
		cfg.ConsumerName,
	)
	redisCfg.MaxRetries = cfg.RedisMaxRetries

	consumer, err := stream.NewStreamConsumer(ctx, &stream.StreamConfig{
		Provider:    os.Getenv("STREAM_PROVIDER"),
		RedisConfig: redisCfg,
	}, deps.Relay, &appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}
	defer consumer.Stop()

	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error().Err(err).Msg("Consumer stopped with error")
	}

	log.Info().Msg("Prompt relay worker stopped")
}

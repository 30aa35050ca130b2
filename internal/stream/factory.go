package stream

import (
	"context"
	"fmt"

	red "github.com/povarna/generative-ai-agents/prompt-relay/internal/redis"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/relay"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/stream/redis"
	"github.com/rs/zerolog"
)

type StreamConfig struct {
	Provider    string // redis only for now
	RedisConfig *redis.RedisStreamConfig
}

func NewStreamConsumer(
	ctx context.Context,
	cfg *StreamConfig,
	service *relay.Service,
	logger *zerolog.Logger,
) (StreamConsumer, error) {

	// If provider is empty, fallback to the default configuration.
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := red.ConnectRedis(
			ctx,
			cfg.RedisConfig.RedisAddr,
			cfg.RedisConfig.RedisPassword,
			cfg.RedisConfig.MaxRetries,
		)
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(client, cfg.RedisConfig, service, logger), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}

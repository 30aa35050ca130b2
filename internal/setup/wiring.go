package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/povarna/generative-ai-agents/prompt-relay/internal/config"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm/bedrock"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm/gpt"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/llm/vertex"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/relay"
	"github.com/rs/zerolog"
)

type Config struct {
	Port               string
	LogLevel           string
	LogFormat          string
	CORSAllowedOrigins []string
	GoogleProjectID    string
	OpenAIKey          string
	RedisAddr          string
	RedisPassword      string
	RequestStream      string
	ResultStream       string
	ConsumerGroup      string
	ConsumerName       string
	RedisMaxRetries    int
}

type Dependencies struct {
	Relay       *relay.Service
	ModelConfig *config.ModelConfig
	Logger      *zerolog.Logger
	closers     []func() error
}

// Close releases provider connections opened by Wire.
func (d *Dependencies) Close() error {
	var errs []string
	for _, closeFn := range d.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close dependencies: %s", strings.Join(errs, "; "))
	}
	return nil
}

func LoadConfig() *Config {
	hostname, _ := os.Hostname()

	return &Config{
		Port:               getEnv("RELAY_API_PORT", "18080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
		CORSAllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),
		GoogleProjectID:    getEnv("GOOGLE_CLOUD_PROJECT", ""),
		OpenAIKey:          getEnv("OPEN_AI_KEY", ""),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RequestStream:      getEnv("RELAY_REQUEST_STREAM", "ask-events"),
		ResultStream:       getEnv("RELAY_RESULT_STREAM", "ask-results"),
		ConsumerGroup:      getEnv("RELAY_CONSUMER_GROUP", "relay-group"),
		ConsumerName:       getEnv("HOSTNAME", hostname),
		RedisMaxRetries:    getEnvInt("REDIS_MAX_RETRIES", 5),
	}
}

// Wire builds the client handle once and binds it into the relay service.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	modelCfg, err := config.LoadModelConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load model config: %w", err)
	}

	deps := &Dependencies{
		ModelConfig: modelCfg,
		Logger:      logger,
	}

	llmClient, err := NewLLMClient(ctx, cfg, modelCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", modelCfg.Provider, err)
	}
	if c, ok := llmClient.(interface{ Close() error }); ok {
		deps.closers = append(deps.closers, c.Close)
	}

	logger.Info().
		Str("provider", modelCfg.Provider).
		Str("model", modelCfg.ModelID).
		Str("region", modelCfg.Region).
		Float64("temperature", modelCfg.TemperatureValue()).
		Int("max_tokens", modelCfg.MaxTokens).
		Msg("LLM client initialized")

	deps.Relay = relay.NewService(llmClient, relay.Params{
		ModelID:     modelCfg.ModelID,
		MaxTokens:   modelCfg.MaxTokens,
		Temperature: modelCfg.TemperatureValue(),
	}, logger)

	return deps, nil
}

func NewLLMClient(ctx context.Context, cfg *Config, modelCfg *config.ModelConfig) (llm.LLMClient, error) {
	switch modelCfg.Provider {
	case config.ProviderVertex:
		return vertex.NewClient(ctx, cfg.GoogleProjectID, modelCfg.Region, modelCfg.ModelID)
	case config.ProviderBedrock:
		return bedrock.NewClient(ctx, modelCfg.Region, modelCfg.ModelID)
	case config.ProviderOpenAI:
		return gpt.NewClient(cfg.OpenAIKey, modelCfg.ModelID)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", modelCfg.Provider)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

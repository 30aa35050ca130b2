package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/models"
	red "github.com/povarna/generative-ai-agents/prompt-relay/internal/redis"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	prompt := flag.String("p", "", "Prompt to relay")
	requestID := flag.String("id", "", "Request ID (generated when empty)")
	stream := flag.String("stream", "ask-events", "Stream name")
	flag.Parse()

	if *prompt == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -p '<prompt>'")
		flag.PrintDefaults()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if *requestID == "" {
		*requestID = uuid.NewString()
	}

	if err := run(*requestID, *prompt, *stream); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(requestID, prompt, stream string) error {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client, err := red.ConnectRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"), 3)
	if err != nil {
		return err
	}
	defer client.Close()

	payload, err := json.Marshal(models.RelayEvent{RequestID: requestID, Prompt: &prompt})
	if err != nil {
		return err
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"payload": string(payload)},
	}).Result()
	if err != nil {
		return err
	}

	log.Info().Str("stream", stream).Str("id", id).Str("request_id", requestID).Msg("Published successfully!")
	return nil
}

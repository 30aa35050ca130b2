package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/prompt-relay/internal/relay"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Consumer struct {
	client       *redis.Client
	stream       string
	resultStream string
	groupID      string
	consumerName string
	claimMinIdle time.Duration
	relay        *relay.Service
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, cfg *RedisStreamConfig, service *relay.Service, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		resultStream: cfg.ResultStream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		claimMinIdle: cfg.ClaimMinIdle,
		relay:        service,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("result_stream", c.resultStream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	c.reclaimPending(ctx)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> retry stale pending entries, then loop again
				c.reclaimPending(ctx)
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err()
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, stream := range msgs {
			for _, msg := range stream.Messages {
				c.process(ctx, msg)
			}
		}
	}
}

// reclaimPending takes over entries that were delivered but never acked, for
// example when publishing the result failed or a worker died mid-message.
func (c *Consumer) reclaimPending(ctx context.Context) {
	if c.claimMinIdle <= 0 {
		return
	}

	claim := func(ctx context.Context, start string) ([]redis.XMessage, string, error) {
		return c.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   c.stream,
			Group:    c.groupID,
			Consumer: c.consumerName,
			MinIdle:  c.claimMinIdle,
			Start:    start,
			Count:    claimBatchSize,
		}).Result()
	}

	claimed, err := drainPending(ctx, claim, func(msg redis.XMessage) {
		c.process(ctx, msg)
	})
	if err != nil && ctx.Err() == nil {
		c.logger.Error().Err(err).Msg("Failed to reclaim pending messages")
	}
	if claimed > 0 {
		c.logger.Info().Int("count", claimed).Msg("Reclaimed pending messages")
	}
}

func (c *Consumer) Stop() error {
	return c.client.Close()
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	event, err := decodeEvent(msg.Values)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	answer, err := c.relay.AskWithRetry(ctx, event.Prompt)
	if err != nil && ctx.Err() != nil {
		// shutting down: leave the message pending for redelivery
		return
	}

	result := buildResult(event, answer, err)
	values, err := encodeResult(result)
	if err != nil {
		c.logger.Error().Err(err).Str("request_id", event.RequestID).Msg("Failed to encode result")
		c.ack(ctx, msg.ID)
		return
	}

	if err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.resultStream,
		Values: values,
	}).Err(); err != nil {
		c.logger.Error().Err(err).Str("request_id", event.RequestID).Msg("Failed to publish result")
		return
	}

	c.logger.Info().
		Str("id", msg.ID).
		Str("request_id", event.RequestID).
		Bool("failed", result.Failed()).
		Msg("Prompt relayed")

	c.ack(ctx, msg.ID)
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}

package redis

import "time"

// DefaultClaimMinIdle is how long an entry stays pending before this group reclaims it.
const DefaultClaimMinIdle = time.Minute

type RedisStreamConfig struct {
	RedisAddr     string
	RedisPassword string
	MaxRetries    int
	Stream        string
	ResultStream  string
	Group         string
	ConsumerName  string
	ClaimMinIdle  time.Duration
}

func NewRedisStreamConfig(redisAddr string, redisPassword string, stream string, resultStream string, group string, consumerName string) *RedisStreamConfig {
	return &RedisStreamConfig{
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		MaxRetries:    5,
		Stream:        stream,
		ResultStream:  resultStream,
		Group:         group,
		ConsumerName:  consumerName,
		ClaimMinIdle:  DefaultClaimMinIdle,
	}
}

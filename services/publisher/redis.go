package publisher

import (
	"context"

	"github.com/redis/go-redis/v9"

	"sjsage522/pricewatcher/pkg/errors"
)

// RedisPublisher mirrors messages into a Redis stream for downstream consumers
type RedisPublisher struct {
	client          *redis.Client
	stream          string
	streamMaxLength int64
	runID           string
}

// NewRedisPublisher creates a new Redis publisher
func NewRedisPublisher(addr string, db int, stream string, streamMaxLength int, runID string) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisPublisher{
		client:          client,
		stream:          stream,
		streamMaxLength: int64(streamMaxLength),
		runID:           runID,
	}
}

// Publish appends message to the stream, trimming it to roughly the configured length
func (p *RedisPublisher) Publish(ctx context.Context, message string) error {
	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.streamMaxLength,
		Approx: true,
		Values: map[string]interface{}{
			"run_id":  p.runID,
			"message": message,
		},
	}).Err()
	if err != nil {
		return errors.NewPublisher(p.stream, "failed to add stream entry", err)
	}
	return nil
}

// Target returns the stream name
func (p *RedisPublisher) Target() string {
	return "redis:" + p.stream
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

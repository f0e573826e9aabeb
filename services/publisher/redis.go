package publisher

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher implements Publisher on a redis stream
type RedisPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewRedisPublisher creates a redis stream publisher. The stream is
// capped at maxLen entries so an unattended worker cannot grow it
// without bound.
func NewRedisPublisher(addr string, db int, stream string, maxLen int) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return &RedisPublisher{client: client, stream: stream, maxLen: int64(maxLen)}
}

// NewRedisPublisherWithClient wraps an existing client
func NewRedisPublisherWithClient(client *redis.Client, stream string, maxLen int) *RedisPublisher {
	return &RedisPublisher{client: client, stream: stream, maxLen: int64(maxLen)}
}

// Publish appends one JSON-encoded event to the stream
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"event": payload,
		},
	}).Err()
}

// Close closes the redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

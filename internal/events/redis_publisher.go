package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/laabobo/live-relay/internal/config"
	"github.com/laabobo/live-relay/internal/domain"
)

// RedisPublisher publishes interaction events to a Redis channel for
// downstream consumers (presence mirrors, points accounting, analytics).
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher connects to Redis and verifies the connection.
func NewRedisPublisher(cfg config.RedisConfig) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	channel := cfg.FeedChannel
	if channel == "" {
		channel = "relay:interactions"
	}

	return &RedisPublisher{
		client:  client,
		channel: channel,
	}, nil
}

// Publish marshals the event and publishes it to the feed channel.
func (p *RedisPublisher) Publish(ctx context.Context, event *domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return p.client.Publish(ctx, p.channel, data).Err()
}

// Close closes the Redis client.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

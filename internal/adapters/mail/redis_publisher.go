// Package mail hands outbound e-mail messages to the asynchronous mail
// channel.
package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	portssvc "github.com/codelab/api-financeiro/internal/core/ports/services"
	"github.com/codelab/api-financeiro/internal/dto"
	"github.com/redis/go-redis/v9"
)

// RedisPublisher enqueues enviar-email messages onto a Redis list consumed
// by the mail worker. Publishing is fire-and-forget: a successful LPUSH is
// all the pipeline waits for, delivery is never confirmed here.
type RedisPublisher struct {
	client *redis.Client
	queue  string
}

// NewRedisPublisher connects to Redis at url (redis:// form) and publishes
// onto queue. The connection is verified once at construction.
func NewRedisPublisher(url, queue string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisPublisher{client: client, queue: queue}, nil
}

// NewRedisPublisherWithClient wraps an existing client, useful in tests.
func NewRedisPublisherWithClient(client *redis.Client, queue string) *RedisPublisher {
	return &RedisPublisher{client: client, queue: queue}
}

var _ portssvc.MailPublisher = (*RedisPublisher)(nil)

// Publish enqueues the message and returns as soon as Redis accepts it.
func (p *RedisPublisher) Publish(ctx context.Context, msg dto.EnviarEmail) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal mail message: %w", err)
	}

	if err := p.client.LPush(ctx, p.queue, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue mail message: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

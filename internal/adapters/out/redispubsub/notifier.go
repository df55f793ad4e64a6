// Package redispubsub delivers realtime event envelopes over Redis pub/sub.
// Each room maps to one Redis channel; the socket gateway subscribes to the
// rooms a connected client is entitled to.
package redispubsub

import (
	"context"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// NewClient creates a Redis client for the given address.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// RedisNotifier implements ports.Notifier over Redis pub/sub.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a notifier over an existing Redis client.
func NewRedisNotifier(client *redis.Client) (*RedisNotifier, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	return &RedisNotifier{client: client}, nil
}

// Publish sends the payload to the room's channel. Delivery is fire-and-
// forget: a room with no subscribers is not an error.
func (n *RedisNotifier) Publish(ctx context.Context, room services.Room, payload []byte) error {
	return n.client.Publish(ctx, string(room), payload).Err()
}

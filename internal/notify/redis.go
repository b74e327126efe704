package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_geo/internal/models"
)

const (
	notificationQueueKey = "notification_events"
)

// RedisQueueTransport кладёт оповещения в очередь Redis, откуда их забирает WebhookWorker
type RedisQueueTransport struct {
	redisClient *redis.Client
}

// NewRedisQueueTransport создает новый RedisQueueTransport
func NewRedisQueueTransport(client *redis.Client) *RedisQueueTransport {
	return &RedisQueueTransport{
		redisClient: client,
	}
}

// Send публикует конверт оповещения в очередь Redis
func (t *RedisQueueTransport) Send(ctx context.Context, recipient string, message models.Notification) error {
	payload, err := json.Marshal(newEnvelope(recipient, message))
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	// LPUSH в голову списка, воркер забирает с хвоста через BRPOP
	if err := t.redisClient.LPush(ctx, notificationQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification to Redis: %w", err)
	}
	return nil
}

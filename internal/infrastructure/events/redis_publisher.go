package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/redis/go-redis/v9"
)

// NotificationChannel - персональный канал участника, его слушает сервис уведомлений.
func NotificationChannel(profileID fmt.Stringer) string {
	return "notifications:" + profileID.String()
}

// RedisPublisher публикует события в общий канал и в персональные каналы получателей.
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
}

func NewRedisPublisher(client redis.UniversalClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, events ...entity.Event) error {
	if len(events) == 0 {
		return nil
	}

	_, err := p.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, e := range events {
			payload, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("events: marshal %s: %w", e.Type, err)
			}
			pipe.Publish(ctx, p.channel, payload)
			for _, recipient := range e.Recipients {
				pipe.Publish(ctx, NotificationChannel(recipient), payload)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("events: publish to redis: %w", err)
	}
	return nil
}

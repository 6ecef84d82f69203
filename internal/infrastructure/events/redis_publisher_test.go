package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRedisPublisher_PublishesToChannelAndRecipients(t *testing.T) {
	client, _ := setupRedis(t)
	ctx := context.Background()

	recipient := uuid.New()
	sub := client.Subscribe(ctx, "bidding:events", NotificationChannel(recipient))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	publisher := NewRedisPublisher(client, "bidding:events")
	event := entity.NewEvent(entity.EventBidAccepted, uuid.New()).
		ForBid(uuid.New()).
		To(recipient).
		With("amount", "250.00")

	require.NoError(t, publisher.Publish(ctx, event))

	got := map[string]entity.Event{}
	ch := sub.Channel()
	for len(got) < 2 {
		select {
		case msg := <-ch:
			var e entity.Event
			require.NoError(t, json.Unmarshal([]byte(msg.Payload), &e))
			got[msg.Channel] = e
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out, received %d messages", len(got))
		}
	}

	assert.Equal(t, event.ID, got["bidding:events"].ID)
	assert.Equal(t, entity.EventBidAccepted, got[NotificationChannel(recipient)].Type)
	assert.Equal(t, "250.00", got[NotificationChannel(recipient)].Payload["amount"])
}

func TestRedisPublisher_NoEventsIsNoop(t *testing.T) {
	client, _ := setupRedis(t)
	publisher := NewRedisPublisher(client, "bidding:events")
	assert.NoError(t, publisher.Publish(context.Background()))
}

func TestRedisPublisher_ReturnsErrorWhenRedisDown(t *testing.T) {
	client, mr := setupRedis(t)
	mr.Close()

	publisher := NewRedisPublisher(client, "bidding:events")
	err := publisher.Publish(context.Background(), entity.NewEvent(entity.EventBidSubmitted, uuid.New()))
	assert.Error(t, err)
}

package events

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
)

// RedisPublisher fans events out over Redis pub/sub. Broadcast sockets and
// push delivery subscribe on the other side.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	body, err := json.Marshal(struct {
		Name    string `json:"name"`
		Payload any    `json:"payload"`
	}{Name: ev.Name, Payload: ev.Payload})
	if err != nil {
		return err
	}

	for _, ch := range ev.Channels {
		if err := p.client.Publish(ctx, ch, body).Err(); err != nil {
			return err
		}
	}
	return nil
}

var _ Publisher = (*RedisPublisher)(nil)

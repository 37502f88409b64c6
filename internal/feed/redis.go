package feed

import (
	"context"
	"encoding/json"
	"fmt"

	platformredis "balangay/internal/platform/redis"
)

// channel is the single pub/sub channel for resident-list changes. One
// channel is enough because every event means the same thing: refetch.
const channel = "balangay.residents.changed"

// Redis publishes and subscribes change events over redis pub/sub.
type Redis struct {
	client *platformredis.Client
}

// NewRedis wraps the shared redis client as a feed backend.
func NewRedis(client *platformredis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal feed event: %w", err)
	}
	if err := r.client.Publish(ctx, channel, body).Err(); err != nil {
		return fmt.Errorf("publish feed event: %w", err)
	}
	return nil
}

// Subscribe delivers events until ctx is cancelled. Malformed payloads are
// skipped; a subscriber that cannot parse an event still refetches on the
// next good one.
func (r *Redis) Subscribe(ctx context.Context) (<-chan Event, error) {
	sub := r.client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe feed channel: %w", err)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

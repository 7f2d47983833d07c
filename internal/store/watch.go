package store

import (
	"context"
	"fmt"
	"log"

	"shopez/internal/cart"
)

// Watch subscribes to the user's events channel and delivers a full
// collection snapshot for every change, starting with the current state.
// The stream is cancelled through ctx: once ctx is done the channel is
// closed, the subscription released, and no further snapshots delivered.
func (s *RedisStore) Watch(ctx context.Context, userID string) (<-chan cart.Collection, error) {
	sub := s.client.Subscribe(ctx, eventsChannel(userID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis subscribe failed: %w", err)
	}

	initial, err := s.Lines(ctx, userID)
	if err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan cart.Collection, 1)
	out <- initial

	go func() {
		defer close(out)
		defer sub.Close()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-messages:
				if !ok {
					return
				}
				snapshot, err := s.Lines(ctx, userID)
				if err != nil {
					log.Printf("cart watch read error for user %s: %v", userID, err)
					continue
				}
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

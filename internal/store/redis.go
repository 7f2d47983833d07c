package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"

	"shopez/internal/cart"
)

// RedisStore keeps each user's cart as a hash under carts:{userID}, one
// field per product id, the line JSON-encoded as the value. Every mutation
// publishes a notification on the user's events channel so watchers can
// re-read the collection.
type RedisStore struct {
	client *redis.Client
}

var _ cart.Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Lines(ctx context.Context, userID string) (cart.Collection, error) {
	fields, err := s.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	// A user with no cart data has an empty collection, not an error.
	collection := make(cart.Collection, len(fields))
	for _, raw := range fields {
		var line cart.Line
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			return nil, fmt.Errorf("unmarshal cart line failed: %w", err)
		}
		collection[line.ID] = line
	}
	return collection, nil
}

func (s *RedisStore) Line(ctx context.Context, userID string, productID int64) (*cart.Line, error) {
	raw, err := s.client.HGet(ctx, cartKey(userID), lineField(productID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrLineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis hget failed: %w", err)
	}

	var line cart.Line
	if err := json.Unmarshal(raw, &line); err != nil {
		return nil, fmt.Errorf("unmarshal cart line failed: %w", err)
	}
	return &line, nil
}

func (s *RedisStore) Put(ctx context.Context, userID string, line cart.Line) error {
	raw, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("marshal cart line failed: %w", err)
	}
	if err := s.client.HSet(ctx, cartKey(userID), lineField(line.ID), raw).Err(); err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}
	s.notify(ctx, userID)
	return nil
}

func (s *RedisStore) UpdateQuantity(ctx context.Context, userID string, productID int64, quantity int) error {
	line, err := s.Line(ctx, userID, productID)
	if err != nil {
		return err
	}

	line.Quantity = quantity
	raw, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("marshal cart line failed: %w", err)
	}
	if err := s.client.HSet(ctx, cartKey(userID), lineField(productID), raw).Err(); err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}
	s.notify(ctx, userID)
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, userID string, productID int64) error {
	// HDEL of an absent field reports zero deletions, which is fine here:
	// removing an absent line is a no-op.
	if err := s.client.HDel(ctx, cartKey(userID), lineField(productID)).Err(); err != nil {
		return fmt.Errorf("redis hdel failed: %w", err)
	}
	s.notify(ctx, userID)
	return nil
}

// notify tells watchers the collection changed. The mutation has already
// been applied, so a failed publish is logged rather than returned.
func (s *RedisStore) notify(ctx context.Context, userID string) {
	if err := s.client.Publish(ctx, eventsChannel(userID), "changed").Err(); err != nil {
		log.Printf("cart store publish error: %v", err)
	}
}

func cartKey(userID string) string {
	return fmt.Sprintf("carts:%s", userID)
}

func eventsChannel(userID string) string {
	return cartKey(userID) + ":events"
}

func lineField(productID int64) string {
	return strconv.FormatInt(productID, 10)
}

// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"encoding/json"
	"time"

	"glamsalon/models"
	"glamsalon/utils"

	"github.com/go-redis/redis/v8"
)

// RedisHistoryStore keeps a bounded conversation history per conversation,
// used to give the response generator recent context.
type RedisHistoryStore struct {
	client     *redis.Client
	ttl        time.Duration
	maxHistory int
}

func NewRedisHistoryStore(client *redis.Client, ttl time.Duration, maxHistory int) *RedisHistoryStore {
	if maxHistory <= 0 {
		maxHistory = 20
	}
	return &RedisHistoryStore{client: client, ttl: ttl, maxHistory: maxHistory}
}

// Get returns the stored history, empty when none exists.
func (s *RedisHistoryStore) Get(ctx context.Context, conversationID string) ([]models.Message, error) {
	key := utils.ChatHistoryPrefix + conversationID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var history []models.Message
	if err := json.Unmarshal([]byte(data), &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Append adds messages, keeping only the most recent maxHistory entries.
func (s *RedisHistoryStore) Append(ctx context.Context, conversationID string, msgs ...models.Message) error {
	history, err := s.Get(ctx, conversationID)
	if err != nil {
		return err
	}
	history = append(history, msgs...)
	if len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}

	b, err := json.Marshal(history)
	if err != nil {
		return err
	}
	key := utils.ChatHistoryPrefix + conversationID
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

// Clear drops the history for a conversation.
func (s *RedisHistoryStore) Clear(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, utils.ChatHistoryPrefix+conversationID).Err()
}

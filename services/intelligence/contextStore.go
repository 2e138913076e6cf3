package ai

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/iono-such-things/hvac-ai-secretary/models"
)

const chatContextPrefix = "chat:ctx:"

// RedisContextStore keeps per-session conversation history with a TTL
// so abandoned chats expire on their own.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, sessionID string) (*models.ChatContext, error) {
	key := chatContextPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var chatCtx models.ChatContext
	if err := json.Unmarshal([]byte(data), &chatCtx); err != nil {
		return nil, err
	}
	return &chatCtx, nil
}

func (s *RedisContextStore) Set(ctx context.Context, sessionID string, chatCtx *models.ChatContext) error {
	key := chatContextPrefix + sessionID
	b, err := json.Marshal(chatCtx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, sessionID string) error {
	key := chatContextPrefix + sessionID
	return s.client.Del(ctx, key).Err()
}

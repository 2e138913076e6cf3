// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/iono-such-things/hvac-ai-secretary/config"
)

// ChatCacheClient is the dedicated client for chat-context caching.
var ChatCacheClient *redis.Client

// InitChatCache initializes the Redis client used by the chat assistant
// to persist per-session conversation context.
func InitChatCache() {
	ChatCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisChatDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ChatCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Chat Cache): %v", err)
	}
}

// GetChatCacheClient returns the chat cache client.
func GetChatCacheClient() *redis.Client {
	if ChatCacheClient == nil {
		InitChatCache()
	}
	return ChatCacheClient
}

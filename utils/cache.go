// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"glamsalon/config"

	"github.com/go-redis/redis/v8"
)

// ChatCacheClient is the Redis client backing conversation history.
var ChatCacheClient *redis.Client

// InitChatCache initializes the Redis client for conversation history
// (using the chat DB from AppConfig).
func InitChatCache() {
	ChatCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisChatDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := ChatCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Chat Cache): %v", err)
	}
}

// GetChatCacheClient returns the Redis client for conversation history.
func GetChatCacheClient() *redis.Client {
	if ChatCacheClient == nil {
		InitChatCache()
	}
	return ChatCacheClient
}

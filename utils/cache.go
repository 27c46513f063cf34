// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"slotserve/config"

	"github.com/go-redis/redis/v8"
)

var (
	// LockCacheClient is the Redis client backing the distributed slot lock table.
	LockCacheClient *redis.Client
	// QueueCacheClient is the Redis client used by the notification queue.
	QueueCacheClient *redis.Client
)

// InitLockCache initializes the Redis client for the slot lock table
// (using DB from AppConfig for lock entries).
func InitLockCache() {
	LockCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLockDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := LockCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Lock Table): %v", err)
	}
}

// GetLockCacheClient returns the Redis client for the slot lock table.
func GetLockCacheClient() *redis.Client {
	if LockCacheClient == nil {
		InitLockCache()
	}
	return LockCacheClient
}

// InitQueueCache initializes the Redis client for the notification queue
// (using DB from AppConfig for queued tasks).
func InitQueueCache() {
	QueueCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := QueueCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Queue): %v", err)
	}
}

// GetQueueCacheClient returns the Redis client for the notification queue.
func GetQueueCacheClient() *redis.Client {
	if QueueCacheClient == nil {
		InitQueueCache()
	}
	return QueueCacheClient
}

// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"nutrivida/config"

	"github.com/go-redis/redis/v8"
)

// ScanQueueClient is the Redis client backing the scan queue. The asynq
// scheduler and server open their own connections; this one is only for
// health checks and diagnostics.
var ScanQueueClient *redis.Client

// InitRedis initializes the scan queue Redis client.
func InitRedis() {
	ScanQueueClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisScanQueueDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ScanQueueClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (scan queue): %v", err)
	}
}

// GetScanQueueClient returns the scan queue client.
func GetScanQueueClient() *redis.Client {
	if ScanQueueClient == nil {
		InitRedis()
	}
	return ScanQueueClient
}

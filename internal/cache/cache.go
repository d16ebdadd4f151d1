package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a redis client from a URL. The cache is optional: an empty
// URL or an unreachable server yields a nil client and the callers run
// uncached.
func Connect(ctx context.Context, redisURL string, logger *log.Logger) *redis.Client {
	if redisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Printf("invalid redis url, running without cache: %v", err)
		return nil
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Printf("redis unreachable, running without cache: %v", err)
		client.Close()
		return nil
	}

	return client
}

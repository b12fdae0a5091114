package data

import (
	"github.com/go-redis/redis/v8"
)

// NewRedisClient creates a Redis client for addr, defaulting to localhost.
func NewRedisClient(addr string) *redis.Client {
	if addr == "" {
		addr = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

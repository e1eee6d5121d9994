package config

import (
	"context"
	"crypto/tls"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions builds client options from REDIS_URL, or from REDIS_ADDR /
// REDIS_HOST + REDIS_PORT, REDIS_PASSWORD, REDIS_DB and REDIS_TLS.
func RedisOptions() (*redis.Options, error) {
	if raw := os.Getenv("REDIS_URL"); raw != "" {
		return redis.ParseURL(raw)
	}
	addr := envStr("REDIS_ADDR", "localhost:6379")
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       envInt("REDIS_DB", 0),
	}
	if envBool("REDIS_TLS", false) {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts, nil
}

// NewRedisClient connects to Redis for the webhook rate limiter and the
// menu cache.  Both are optional: it returns nil when Redis is disabled,
// misconfigured or unreachable, and the middlewares then pass through.
func NewRedisClient() *redis.Client {
	if !envBool("REDIS_ENABLED", true) {
		return nil
	}
	opts, err := RedisOptions()
	if err != nil {
		log.Printf("redis: invalid configuration: %v", err)
		return nil
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis: ping %s failed: %v; rate limiting and caching disabled", opts.Addr, err)
		_ = client.Close()
		return nil
	}
	return client
}

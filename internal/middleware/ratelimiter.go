package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/gr3edydevel0per/N-Layer-API/internal/config"
)

// RateLimiter limits requests per client over a fixed window using Redis
type RateLimiter interface {
	// Allow reports whether the client identified by key may proceed.
	Allow(ctx context.Context, key string) (bool, error)

	// Middleware applies the limiter per client IP.
	Middleware() gin.HandlerFunc

	// Close closes the Redis connection
	Close() error
}

type redisRateLimiter struct {
	client *redis.Client
	window time.Duration
	max    int64
	logger *slog.Logger
}

// NewRateLimiter creates a new Redis-based fixed-window rate limiter
func NewRateLimiter(cfg *config.Config, logger *slog.Logger) (RateLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDB),
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("❌ [RateLimiter] Failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [RateLimiter] Connected to Redis",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
	)

	return &redisRateLimiter{
		client: client,
		window: time.Duration(cfg.RateLimitWindow) * time.Second,
		max:    cfg.RateLimitMax,
		logger: logger,
	}, nil
}

// NewRateLimiterWithClient creates a limiter on an existing Redis client (for testing)
func NewRateLimiterWithClient(client *redis.Client, window time.Duration, max int64, logger *slog.Logger) RateLimiter {
	return &redisRateLimiter{
		client: client,
		window: window,
		max:    max,
		logger: logger,
	}
}

func (r *redisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("rate:%s", key)

	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}

	// Arm the expiry only on the increment that creates the key. Re-arming
	// on every request would make the window sliding instead of fixed and
	// a steady client would never see the counter reset.
	if count == 1 {
		if err := r.client.Expire(ctx, redisKey, r.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= r.max, nil
}

func (r *redisRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := r.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Fail open: a broken limiter should not take the API down.
			r.logger.Error("❌ [RateLimiter] Redis error, allowing request", "error", err)
			c.Next()
			return
		}

		if !allowed {
			r.logger.Warn("⚠️ [RateLimiter] Request rejected", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests, please try again later",
			})
			return
		}

		c.Next()
	}
}

func (r *redisRateLimiter) Close() error {
	return r.client.Close()
}

// noOpRateLimiter allows everything; used when Redis is unavailable
type noOpRateLimiter struct {
	logger *slog.Logger
}

// NewNoOpRateLimiter creates a rate limiter that never rejects
func NewNoOpRateLimiter(logger *slog.Logger) RateLimiter {
	logger.Warn("⚠️ [RateLimiter] Using no-op rate limiter, requests will not be limited")
	return &noOpRateLimiter{logger: logger}
}

func (n *noOpRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return true, nil
}

func (n *noOpRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

func (n *noOpRateLimiter) Close() error {
	return nil
}

package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis (default: "rl:ip:")
	KeyPrefix string
	// Custom key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
}

// DefaultRateLimitConfig applies to every API route.
func DefaultRateLimitConfig(perMinute int) RateLimitConfig {
	return RateLimitConfig{
		Limit:     perMinute,
		Window:    time.Minute,
		KeyPrefix: "rl:ip:",
	}
}

// AuthRateLimitConfig is the stricter budget for register and login.
func AuthRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Limit:     20,
		Window:    time.Minute,
		KeyPrefix: "rl:auth:",
	}
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// RateLimiter counts requests per key in Redis, or in process memory when no
// client is configured or Redis errors. It fails open.
type RateLimiter struct {
	client *goredis.Client
	secLog *security.SecurityLogger

	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(client *goredis.Client, secLog *security.SecurityLogger) *RateLimiter {
	return &RateLimiter{
		client:  client,
		secLog:  secLog,
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

// Middleware enforces config. A non-positive limit disables it.
func (rl *RateLimiter) Middleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	return func(c *gin.Context) {
		if config.Limit <= 0 {
			c.Next()
			return
		}

		key := config.KeyPrefix + config.KeyFunc(c)
		count, resetAt := rl.hit(c.Request.Context(), key, config)

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > config.Limit {
			retryAfter := int(resetAt.Sub(rl.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			rl.secLog.Log(c.Request.Context(), security.SecurityEvent{
				Event:       security.EventRateLimited,
				SubjectType: "ip",
				IP:          c.ClientIP(),
				UserAgent:   c.GetHeader("User-Agent"),
				RequestID:   c.GetString("RequestID"),
				Details:     map[string]interface{}{"path": c.FullPath(), "limit": config.Limit},
			})

			c.Error(apperror.TooManyRequests(fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter)))
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) hit(ctx context.Context, key string, config RateLimitConfig) (int, time.Time) {
	if rl.client != nil {
		count, resetAt, err := rl.hitRedis(ctx, key, config)
		if err == nil {
			return count, resetAt
		}
		logger.Log.Warn("Rate limit store unavailable, using in-memory counter", "error", err)
	}
	return rl.hitInMemory(key, config)
}

func (rl *RateLimiter) hitRedis(ctx context.Context, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := rl.client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), rl.now().Add(time.Duration(ttl) * time.Second), nil
}

func (rl *RateLimiter) hitInMemory(key string, config RateLimitConfig) (int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, ok := rl.entries[key]
	if !ok || now.After(entry.resetAt) {
		entry = &rateLimitEntry{resetAt: now.Add(config.Window)}
		rl.entries[key] = entry
	}
	entry.count++

	// Opportunistic sweep keeps the map bounded by active keys.
	if len(rl.entries) > 10000 {
		for k, e := range rl.entries {
			if now.After(e.resetAt) {
				delete(rl.entries, k)
			}
		}
	}
	return entry.count, entry.resetAt
}

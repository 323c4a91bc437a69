package security

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login throttling
type LoginTrackerConfig struct {
	MaxAttempts int           // Failed attempts allowed inside one window (default: 5)
	Decay       time.Duration // Window length, counted from the first miss (default: 60s)
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts: 5,
		Decay:       60 * time.Second,
	}
}

// LoginTracker counts failed login attempts per throttle key (lower(email)|ip).
// Counters live in Redis when a client is given and in process memory otherwise.
type LoginTracker struct {
	config LoginTrackerConfig
	client *goredis.Client

	mu     sync.Mutex
	memory map[string]*attemptEntry
	now    func() time.Time
}

type attemptEntry struct {
	count   int
	resetAt time.Time
}

// NewLoginTracker creates a tracker. client may be nil.
func NewLoginTracker(config LoginTrackerConfig, client *goredis.Client) *LoginTracker {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultLoginTrackerConfig().MaxAttempts
	}
	if config.Decay <= 0 {
		config.Decay = DefaultLoginTrackerConfig().Decay
	}
	return &LoginTracker{
		config: config,
		client: client,
		memory: make(map[string]*attemptEntry),
		now:    time.Now,
	}
}

const failLoginPrefix = "fail:login:"

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: current count after increment
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// TooManyAttempts reports whether key has exhausted its attempts and, if so,
// how long until the window resets.
func (lt *LoginTracker) TooManyAttempts(ctx context.Context, key string) (bool, time.Duration, error) {
	if lt.client == nil {
		return lt.tooManyInMemory(key)
	}

	redisKey := failLoginPrefix + key
	count, err := lt.client.Get(ctx, redisKey).Int()
	if errors.Is(err, goredis.Nil) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to read attempt count: %w", err)
	}
	if count < lt.config.MaxAttempts {
		return false, 0, nil
	}

	ttl, err := lt.client.TTL(ctx, redisKey).Result()
	if err != nil {
		return true, lt.config.Decay, fmt.Errorf("failed to read attempt TTL: %w", err)
	}
	if ttl < 0 {
		ttl = lt.config.Decay
	}
	return true, ttl, nil
}

// Hit records one failed attempt for key and returns the new count.
func (lt *LoginTracker) Hit(ctx context.Context, key string) (int, error) {
	if lt.client == nil {
		return lt.hitInMemory(key), nil
	}

	ttlSeconds := int(lt.config.Decay.Seconds())
	result, err := lt.client.Eval(ctx, incrWithTTLScript, []string{failLoginPrefix + key}, ttlSeconds).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment attempt counter: %w", err)
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

// Clear forgets every failed attempt for key, used after a successful login.
func (lt *LoginTracker) Clear(ctx context.Context, key string) error {
	if lt.client == nil {
		lt.mu.Lock()
		delete(lt.memory, key)
		lt.mu.Unlock()
		return nil
	}
	if err := lt.client.Del(ctx, failLoginPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to clear attempts: %w", err)
	}
	return nil
}

func (lt *LoginTracker) tooManyInMemory(key string) (bool, time.Duration, error) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	entry, ok := lt.memory[key]
	if !ok {
		return false, 0, nil
	}
	now := lt.now()
	if !now.Before(entry.resetAt) {
		delete(lt.memory, key)
		return false, 0, nil
	}
	if entry.count < lt.config.MaxAttempts {
		return false, 0, nil
	}
	return true, entry.resetAt.Sub(now), nil
}

func (lt *LoginTracker) hitInMemory(key string) int {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	now := lt.now()
	entry, ok := lt.memory[key]
	if !ok || !now.Before(entry.resetAt) {
		entry = &attemptEntry{resetAt: now.Add(lt.config.Decay)}
		lt.memory[key] = entry
	}
	entry.count++
	return entry.count
}

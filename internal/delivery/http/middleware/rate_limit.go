package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-jobtrack-backend/internal/delivery/http/response"
	"go-jobtrack-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for fixed-window rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

var rateLimitStore sync.Map

// Lua script for atomic increment with TTL on first set.
// KEYS[1] = counter key, ARGV[1] = TTL in seconds.
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// RateLimit limits requests per client IP within a fixed window. Counters
// live in Redis when available so limits hold across instances; otherwise
// an in-memory fallback keeps single-instance limits working.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	script := goredis.NewScript(rateLimitLuaScript)

	return func(c *gin.Context) {
		key := "rl:ip:" + c.ClientIP()

		var count int
		var retryAfter time.Duration

		if client := redis.Client(); client != nil {
			res, err := script.Run(c.Request.Context(), client, []string{key},
				int(cfg.Window.Seconds())).Result()
			if vals, _ := res.([]interface{}); err == nil && len(vals) == 2 {
				n, _ := vals[0].(int64)
				ttl, _ := vals[1].(int64)
				count = int(n)
				retryAfter = time.Duration(ttl) * time.Second
			} else {
				// Redis hiccup: fail open rather than reject traffic.
				c.Next()
				return
			}
		} else {
			count, retryAfter = incrementInMemory(key, cfg.Window)
		}

		if count > cfg.Limit {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			response.Error(c, http.StatusTooManyRequests,
				fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", int(retryAfter.Seconds())), nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func incrementInMemory(key string, window time.Duration) (int, time.Duration) {
	now := time.Now()
	v, _ := rateLimitStore.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(window)})
	entry := v.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(window)
	}
	entry.count++
	return entry.count, time.Until(entry.resetAt)
}

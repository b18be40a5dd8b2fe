package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Limiter decides whether one more request for key fits in the window.
type Limiter interface {
	IsAllowed(ctx context.Context, key string) (allowed bool, remaining int, reset time.Time, err error)
	GetRemainingRequests(ctx context.Context, key string) (remaining int, reset time.Time, err error)
	Config() RateLimitConfig
}

// RateLimiter handles rate limiting using Redis fixed windows
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		now:    time.Now,
	}
}

func (rl *RateLimiter) Config() RateLimitConfig { return rl.config }

func (rl *RateLimiter) windowKey(key string) (string, time.Time) {
	windowStart := rl.now().Truncate(rl.config.Window)
	return fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix()), windowStart
}

// IsAllowed counts the request and reports whether it is within the limit
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	redisKey, windowStart := rl.windowKey(key)

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	return count <= rl.config.Limit, max(rl.config.Limit-count, 0), windowStart.Add(rl.config.Window), nil
}

// GetRemainingRequests returns the remaining requests without counting one
func (rl *RateLimiter) GetRemainingRequests(ctx context.Context, key string) (int, time.Time, error) {
	redisKey, windowStart := rl.windowKey(key)
	reset := windowStart.Add(rl.config.Window)

	count, err := rl.redis.Get(ctx, redisKey).Int()
	if err == redis.Nil {
		return rl.config.Limit, reset, nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}
	return max(rl.config.Limit-count, 0), reset, nil
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalRateLimiter is an in-process token bucket per key. It refills at
// Limit tokens per Window with a burst of Limit, so a fresh key gets the
// same allowance as a Redis window.
type LocalRateLimiter struct {
	config  RateLimitConfig
	mu      sync.Mutex
	entries map[string]*localEntry
	now     func() time.Time
}

// NewLocalRateLimiter creates a limiter that needs no external store.
// A non-positive limit or window is raised to 1 request per second.
func NewLocalRateLimiter(config RateLimitConfig) *LocalRateLimiter {
	config.Limit = max(config.Limit, 1)
	if config.Window <= 0 {
		config.Window = time.Second
	}
	return &LocalRateLimiter{
		config:  config,
		entries: make(map[string]*localEntry),
		now:     time.Now,
	}
}

func (l *LocalRateLimiter) Config() RateLimitConfig { return l.config }

func (l *LocalRateLimiter) IsAllowed(_ context.Context, key string) (bool, int, time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	entry, ok := l.entries[key]
	if !ok {
		every := rate.Every(l.config.Window / time.Duration(l.config.Limit))
		entry = &localEntry{limiter: rate.NewLimiter(every, l.config.Limit)}
		l.entries[key] = entry
	}
	entry.lastSeen = now

	allowed := entry.limiter.AllowN(now, 1)
	tokens := entry.limiter.TokensAt(now)
	return allowed, max(int(tokens), 0), l.resetAt(now, tokens), nil
}

func (l *LocalRateLimiter) GetRemainingRequests(_ context.Context, key string) (int, time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[key]
	if !ok {
		return l.config.Limit, now, nil
	}
	tokens := entry.limiter.TokensAt(now)
	return max(int(tokens), 0), l.resetAt(now, tokens), nil
}

// resetAt is when the bucket is full again
func (l *LocalRateLimiter) resetAt(now time.Time, tokens float64) time.Time {
	perToken := l.config.Window / time.Duration(l.config.Limit)
	return now.Add(time.Duration((float64(l.config.Limit) - tokens) * float64(perToken)))
}

// prune drops keys idle for a full window; their buckets are full again anyway
func (l *LocalRateLimiter) prune(now time.Time) {
	for key, entry := range l.entries {
		if now.Sub(entry.lastSeen) > l.config.Window {
			delete(l.entries, key)
		}
	}
}

// FallbackLimiter uses primary and switches to secondary for any request
// where primary fails.
type FallbackLimiter struct {
	primary   Limiter
	secondary Limiter
	logger    *zap.Logger
}

func NewFallbackLimiter(primary, secondary Limiter, logger *zap.Logger) *FallbackLimiter {
	return &FallbackLimiter{primary: primary, secondary: secondary, logger: logger}
}

func (f *FallbackLimiter) Config() RateLimitConfig { return f.primary.Config() }

func (f *FallbackLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	allowed, remaining, reset, err := f.primary.IsAllowed(ctx, key)
	if err == nil {
		return allowed, remaining, reset, nil
	}
	f.logger.Warn("rate limit store unavailable, using local limiter", zap.Error(err))
	return f.secondary.IsAllowed(ctx, key)
}

func (f *FallbackLimiter) GetRemainingRequests(ctx context.Context, key string) (int, time.Time, error) {
	remaining, reset, err := f.primary.GetRemainingRequests(ctx, key)
	if err == nil {
		return remaining, reset, nil
	}
	return f.secondary.GetRemainingRequests(ctx, key)
}

// NewLimiter builds a Redis backed limiter with a local fallback, or a
// purely local one when no Redis client is configured.
func NewLimiter(redisClient *redis.Client, config RateLimitConfig, logger *zap.Logger) Limiter {
	local := NewLocalRateLimiter(config)
	if redisClient == nil {
		return local
	}
	return NewFallbackLimiter(NewRateLimiter(redisClient, config), local, logger)
}

// RateLimit enforces the limiter per authenticated user. With perResource
// set, the key also includes the :id route parameter.
func RateLimit(l Limiter, perResource bool) gin.HandlerFunc {
	cfg := l.Config()
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			abort(c, apperr.Unauthorized("user not authenticated"))
			return
		}

		key := userID.String()
		if perResource {
			key += ":" + c.Param("id")
		}

		allowed, remaining, resetTime, err := l.IsAllowed(c.Request.Context(), key)
		if err != nil {
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			retryAfter := max(int(time.Until(resetTime).Seconds()), 1)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			abort(c, apperr.TooManyRequests(fmt.Sprintf(
				"You have exceeded the rate limit of %d requests per %v", cfg.Limit, cfg.Window)))
			return
		}

		c.Next()
	}
}

// RecipeCreationLimit is the per-user budget for creating recipes
func RecipeCreationLimit(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{Window: window, Limit: limit, KeyPrefix: "rate_limit:recipe_creation"}
}

// RecipeModificationLimit is the per-user, per-recipe budget for edits
func RecipeModificationLimit(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{Window: window, Limit: limit, KeyPrefix: "rate_limit:recipe_modification"}
}

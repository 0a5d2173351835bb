package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/deppfellow/galeria-api/internal/errs"
	"github.com/deppfellow/galeria-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	// RateLimitWindow is the period server.rate_limit is counted over.
	RateLimitWindow = time.Minute

	// MsgRateLimited is the body message of a 429.
	MsgRateLimited = "Limite de requisições excedido, tente novamente em instantes"

	rateLimitKeyPrefix = "galeria:ratelimit:"

	// maxTrackedClients bounds the in-memory limiter map.
	maxTrackedClients = 10000
)

// Limiter decides whether one more request from key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// redisLimiter is a fixed-window counter shared by every instance using the
// same Redis.
type redisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func newRedisLimiter(client *redis.Client, limit int, window time.Duration) *redisLimiter {
	return &redisLimiter{client: client, limit: limit, window: window, now: time.Now}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := l.now().UnixNano() / int64(l.window)
	redisKey := rateLimitKeyPrefix + key + ":" + strconv.FormatInt(bucket, 10)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return true, fmt.Errorf("rate limit counter: %w", err)
	}

	return incr.Val() <= int64(l.limit), nil
}

// memoryLimiter keeps one token bucket per key in process memory.
type memoryLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	idle     time.Duration
	max      int
	now      func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newMemoryLimiter(limit int, window time.Duration) *memoryLimiter {
	return &memoryLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Every(window / time.Duration(limit)),
		burst:    limit,
		idle:     window,
		max:      maxTrackedClients,
		now:      time.Now,
	}
}

func (l *memoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	client, exists := l.limiters[key]
	if !exists {
		if len(l.limiters) >= l.max {
			l.evict(now)
		}
		client = &clientLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = client
	}
	client.lastSeen = now

	return client.limiter.AllowN(now, 1), nil
}

// evict drops buckets idle for a whole window, which are full again anyway.
// When none are idle the least recently seen bucket goes. Callers hold mu.
func (l *memoryLimiter) evict(now time.Time) {
	var oldestKey string
	var oldest time.Time

	for key, client := range l.limiters {
		if now.Sub(client.lastSeen) >= l.idle {
			delete(l.limiters, key)
			continue
		}
		if oldestKey == "" || client.lastSeen.Before(oldest) {
			oldestKey, oldest = key, client.lastSeen
		}
	}

	if len(l.limiters) >= l.max && oldestKey != "" {
		delete(l.limiters, oldestKey)
	}
}

// RateLimitMiddleware enforces server.rate_limit requests per minute per
// client IP. Redis backs the counters when configured, process memory
// otherwise. A zero limit disables it.
type RateLimitMiddleware struct {
	server  *server.Server
	limiter Limiter
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	r := &RateLimitMiddleware{server: s}

	limit := s.Config.Server.RateLimit
	switch {
	case limit <= 0:
	case s.Redis != nil:
		r.limiter = newRedisLimiter(s.Redis, limit, RateLimitWindow)
	default:
		r.limiter = newMemoryLimiter(limit, RateLimitWindow)
	}

	return r
}

// Limit returns the enforcing middleware. Limiter failures are logged and the
// request is let through.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if r.limiter == nil {
			return next
		}

		return func(c echo.Context) error {
			allowed, err := r.limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				GetLogger(c).Warn().Err(err).Msg("rate limiter unavailable, allowing request")
			}

			if !allowed {
				r.RecordRateLimitHit(c.Path())
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(RateLimitWindow.Seconds())))
				return errs.NewTooManyRequestsError(MsgRateLimited)
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit records a RateLimitHit custom event in New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

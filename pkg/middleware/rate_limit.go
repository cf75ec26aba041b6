package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"mentorbooking/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// RateLimiter decides whether key may issue another request in the current
// window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Stop()
}

// KeyExtractor returns the rate limit key for a request, or "" to skip.
type KeyExtractor func(r *http.Request) string

// RequesterKey keys by the authenticated email, falling back to the client
// address for anonymous requests.
func RequesterKey(r *http.Request) string {
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		return claims.Email
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type InMemoryRateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewInMemoryRateLimiter(limit int, window time.Duration) *InMemoryRateLimiter {
	limiter := &InMemoryRateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		stopCh:   make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *InMemoryRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for key, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *InMemoryRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Allow uses a sliding window per key.
func (rl *InMemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	if key == "" {
		return true, nil
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := rl.requests[key][:0]
	for _, ts := range rl.requests[key] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false, nil
	}

	rl.requests[key] = append(valid, now)
	return true, nil
}

// RedisRateLimiter counts requests in fixed windows shared by every API
// replica.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
	}
}

func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return true, nil
	}

	bucket := time.Now().UnixNano() / int64(rl.window)
	redisKey := fmt.Sprintf("%s%s:%d", rl.prefix, key, bucket)

	var incr *redis.IntCmd
	_, err := rl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, rl.window)
		return nil
	})
	if err != nil {
		return false, err
	}

	return incr.Val() <= int64(rl.limit), nil
}

func (rl *RedisRateLimiter) Stop() {}

// RateLimit fails open when the limiter backend errors.
func RateLimit(limiter RateLimiter, extractor KeyExtractor, log *logger.Logger) func(http.Handler) http.Handler {
	if extractor == nil {
		extractor = RequesterKey
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extractor(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.Error("Rate limiter unavailable, allowing request",
					"request_id", requestID(r),
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				log.Warn("Rate limit exceeded",
					"request_id", requestID(r),
					"key", key,
					"path", r.URL.Path,
				)
				writeJSONError(w, http.StatusTooManyRequests, `{"error":"Rate limit exceeded"}`)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

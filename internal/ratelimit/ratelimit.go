// Package ratelimit throttles public contact-form submissions per source IP.
package ratelimit

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter answers whether a request from the given key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter implements a fixed window counter shared across instances.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	prefix string
}

func NewRedisLimiter(client *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		max:    max,
		window: window,
		prefix: "ratelimit:contact:",
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.prefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// First hit opens the window
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(l.max), nil
}

// MemoryLimiter is the single-instance fallback when Redis is not
// configured: one token bucket per source IP, sized so a full burst equals
// the window allowance.
type MemoryLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*memoryBucket
	max      int
	window   time.Duration
	lastSeen map[string]time.Time
	now      func() time.Time
}

type memoryBucket struct {
	limiter *rate.Limiter
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		buckets:  make(map[string]*memoryBucket),
		max:      max,
		window:   window,
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		// Refill one submission per window/max so the allowance recovers
		// gradually instead of all at once.
		b = &memoryBucket{
			limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.max)), l.max),
		}
		l.buckets[key] = b
	}
	l.lastSeen[key] = l.now()

	if len(l.buckets) > 10000 {
		l.evictStale()
	}

	return b.limiter.AllowN(l.now(), 1), nil
}

// evictStale drops buckets idle for longer than a full window. Caller must
// hold the mutex.
func (l *MemoryLimiter) evictStale() {
	cutoff := l.now().Add(-l.window)
	dropped := 0
	for key, seen := range l.lastSeen {
		if seen.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastSeen, key)
			dropped++
		}
	}
	if dropped > 0 {
		log.Printf("[RateLimit] Evicted %d idle buckets", dropped)
	}
}

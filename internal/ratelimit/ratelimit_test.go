package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterBurst(t *testing.T) {
	l := NewMemoryLimiter(3, 15*time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		ok, err := l.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should be allowed", i)
	}

	ok, err := l.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, ok, "4th request inside the window must be rejected")
}

func TestMemoryLimiterPerKeyIsolation(t *testing.T) {
	l := NewMemoryLimiter(3, 15*time.Minute)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		l.Allow(ctx, "203.0.113.7")
	}

	ok, err := l.Allow(ctx, "198.51.100.9")
	require.NoError(t, err)
	assert.True(t, ok, "a different IP must not be affected")
}

func TestMemoryLimiterRecoversAfterWindow(t *testing.T) {
	l := NewMemoryLimiter(3, 15*time.Minute)
	current := time.Now()
	l.now = func() time.Time { return current }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow(ctx, "203.0.113.7")
		require.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "203.0.113.7")
	require.False(t, ok)

	// A full window later the allowance is back
	current = current.Add(15 * time.Minute)
	ok, err := l.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryLimiterEvictStale(t *testing.T) {
	l := NewMemoryLimiter(3, 15*time.Minute)
	current := time.Now()
	l.now = func() time.Time { return current }
	ctx := context.Background()

	l.Allow(ctx, "a")
	l.Allow(ctx, "b")

	current = current.Add(16 * time.Minute)
	l.Allow(ctx, "c")

	l.mu.Lock()
	l.evictStale()
	remaining := len(l.buckets)
	l.mu.Unlock()

	assert.Equal(t, 1, remaining, "only the fresh bucket should survive")
}

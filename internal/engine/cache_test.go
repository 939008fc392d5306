package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, CacheKey("youtube_search", "golang"), CacheKey("youtube_search", "golang"))
	})

	t.Run("different inputs differ", func(t *testing.T) {
		assert.NotEqual(t, CacheKey("youtube_search", "golang"), CacheKey("youtube_search", "python"))
	})

	t.Run("has prefix", func(t *testing.T) {
		assert.Equal(t, "yt:", CacheKey("test")[:3])
	})
}

func TestCacheGetSet(t *testing.T) {
	InitCache("", time.Minute, 100, 5*time.Minute)
	t.Cleanup(func() { InitCache("", 0, 0, 0) })

	ctx := context.Background()
	key := CacheKey("test", "round-trip")

	_, ok := CacheLoadJSON[Stats](ctx, key)
	assert.False(t, ok, "expected cache miss on empty cache")

	CacheStoreJSON(ctx, key, Stats{TotalVideos: 3, TotalViews: 30})

	got, ok := CacheLoadJSON[Stats](ctx, key)
	require.True(t, ok, "expected cache hit after set")
	assert.Equal(t, 3, got.TotalVideos)
	assert.Equal(t, int64(30), got.TotalViews)
}

func TestCacheExpiration(t *testing.T) {
	InitCache("", time.Millisecond, 100, 5*time.Minute)
	t.Cleanup(func() { InitCache("", 0, 0, 0) })

	ctx := context.Background()
	key := CacheKey("test", "expiry")

	CacheSet(ctx, key, []byte("temp"))
	time.Sleep(5 * time.Millisecond)

	_, ok := CacheGet(ctx, key)
	assert.False(t, ok, "expected cache miss after TTL expiry")
}

func TestCacheEviction(t *testing.T) {
	InitCache("", time.Minute, 3, 5*time.Minute)
	t.Cleanup(func() { InitCache("", 0, 0, 0) })
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		CacheSet(ctx, CacheKey("evict", fmt.Sprintf("item-%d", i)), []byte(fmt.Sprintf("v%d", i)))
	}

	count := 0
	resultCache.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.LessOrEqual(t, count, 3)
}

func TestCacheDisabled(t *testing.T) {
	InitCache("", 0, 0, 0)
	ctx := context.Background()

	CacheSet(ctx, "k", []byte("v"))
	_, ok := CacheGet(ctx, "k")
	assert.False(t, ok)
}

func TestCacheStats(t *testing.T) {
	InitCache("", time.Minute, 100, 5*time.Minute)
	t.Cleanup(func() { InitCache("", 0, 0, 0) })
	cacheHits.Store(0)
	cacheMisses.Store(0)

	ctx := context.Background()
	key := CacheKey("stats", "test")

	CacheGet(ctx, key)
	_, misses := CacheStats()
	assert.Equal(t, int64(1), misses)

	CacheSet(ctx, key, []byte("x"))
	CacheGet(ctx, key)

	hits, misses := CacheStats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

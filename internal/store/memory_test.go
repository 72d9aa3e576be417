package store

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/i474232898/aqi-explorer/internal/airquality"
)

func derived(v float64) airquality.Derived {
	return airquality.Derived{
		Series: []airquality.SeriesPoint{{Date: airquality.DateKey{Year: 2000, Month: 1, Day: 1, Raw: "2000-01-01"}, AverageValue: v}},
		Peak:   v,
	}
}

func TestMemoryCacheGetPut(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10, time.Hour)

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("expected miss")
	}

	c.Put(ctx, "a", derived(1))
	d, ok := c.Get(ctx, "a")
	if !ok || d.Peak != 1 {
		t.Fatalf("expected hit with peak 1, got %+v, %v", d, ok)
	}
}

func TestMemoryCacheRetentionByCount(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2, 0)

	c.Put(ctx, "a", derived(1))
	c.Put(ctx, "b", derived(2))
	c.Put(ctx, "a", derived(3))
	c.Put(ctx, "c", derived(4))

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	if _, ok := c.Get(ctx, "b"); ok {
		t.Fatal("oldest entry should have been evicted")
	}
	if d, ok := c.Get(ctx, "a"); !ok || d.Peak != 3 {
		t.Fatalf("re-put entry should survive with new value, got %+v, %v", d, ok)
	}
}

func TestMemoryCacheRetentionByAge(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0, time.Minute)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Put(ctx, "old", derived(1))
	now = now.Add(2 * time.Minute)

	if _, ok := c.Get(ctx, "old"); ok {
		t.Fatal("expired entry should miss")
	}

	c.Put(ctx, "new", derived(2))
	if c.Len() != 1 {
		t.Fatalf("expired entry should be dropped on put, got %d entries", c.Len())
	}
}

func TestRedisCacheUnavailableIsMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	c.Put(ctx, "k", derived(1))
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss when redis is unreachable")
	}
}

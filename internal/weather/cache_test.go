package weather

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ykvlv/hydration-bot/internal/testutil"
)

type countingLookup struct {
	calls int
	temp  float64
	ok    bool
}

func (c *countingLookup) CurrentTemperature(context.Context, string) (float64, bool) {
	c.calls++
	return c.temp, c.ok
}

func TestRedisCache_CachesSuccessfulLookups(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	next := &countingLookup{temp: 24, ok: true}
	cache := NewRedisCache(client, next, time.Hour, zap.NewNop())

	for i := 0; i < 3; i++ {
		got, ok := cache.CurrentTemperature(ctx, " Madrid")
		if !ok || got != 24 {
			t.Fatalf("call %d: want (24, true), got (%v, %v)", i, got, ok)
		}
	}
	if next.calls != 1 {
		t.Fatalf("want 1 upstream call, got %d", next.calls)
	}
	if got, _ := cache.CurrentTemperature(ctx, "MADRID"); got != 24 || next.calls != 1 {
		t.Fatalf("city key must be case-insensitive")
	}

	ttl, err := client.TTL(ctx, cacheKey("madrid")).Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Fatalf("unexpected ttl %v", ttl)
	}
}

func TestRedisCache_FailuresAreNotCached(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	next := &countingLookup{ok: false}
	cache := NewRedisCache(client, next, time.Hour, zap.NewNop())

	for i := 0; i < 2; i++ {
		if _, ok := cache.CurrentTemperature(ctx, "Nowhere"); ok {
			t.Fatalf("want no data")
		}
	}
	if next.calls != 2 {
		t.Fatalf("failures must hit upstream every time, got %d calls", next.calls)
	}
}

package llm

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestModelCacheTTL(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context) ([]string, error) {
		calls++
		return []string{fmt.Sprintf("model-%d", calls)}, nil
	}

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	cache := newModelCache(5*time.Minute, fetch)
	cache.now = func() time.Time { return now }

	ctx := context.Background()

	got, err := cache.get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got[0] != "model-1" || calls != 1 {
		t.Fatalf("first get = %v (calls=%d)", got, calls)
	}

	// Within TTL: served from cache.
	now = now.Add(4 * time.Minute)
	got, _ = cache.get(ctx)
	if got[0] != "model-1" || calls != 1 {
		t.Errorf("cached get = %v (calls=%d), want model-1 with 1 call", got, calls)
	}

	// Past TTL: refreshed.
	now = now.Add(2 * time.Minute)
	got, _ = cache.get(ctx)
	if got[0] != "model-2" || calls != 2 {
		t.Errorf("expired get = %v (calls=%d), want model-2 with 2 calls", got, calls)
	}
}

func TestModelCacheInvalidate(t *testing.T) {
	calls := 0
	cache := newModelCache(time.Hour, func(_ context.Context) ([]string, error) {
		calls++
		return []string{"m"}, nil
	})

	ctx := context.Background()
	if _, err := cache.get(ctx); err != nil {
		t.Fatal(err)
	}
	cache.invalidate()
	if _, err := cache.get(ctx); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 after invalidation", calls)
	}
}

func TestModelCacheServesStaleOnError(t *testing.T) {
	calls := 0
	cache := newModelCache(time.Nanosecond, func(_ context.Context) ([]string, error) {
		calls++
		if calls > 1 {
			return nil, fmt.Errorf("server down")
		}
		return []string{"m"}, nil
	})

	ctx := context.Background()
	if _, err := cache.get(ctx); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)

	got, err := cache.get(ctx)
	if err != nil {
		t.Fatalf("expected stale data, got error: %v", err)
	}
	if len(got) != 1 || got[0] != "m" {
		t.Errorf("stale get = %v", got)
	}
}

func TestModelCacheErrorWhenEmpty(t *testing.T) {
	cache := newModelCache(time.Minute, func(_ context.Context) ([]string, error) {
		return nil, fmt.Errorf("server down")
	})

	if _, err := cache.get(context.Background()); err == nil {
		t.Error("expected error when nothing cached")
	}
}

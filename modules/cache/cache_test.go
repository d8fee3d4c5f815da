package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// TestConfig for unit tests - the Redis tests require Redis on localhost:6379
const testRedisAddr = "localhost:6379"

type summaryPayload struct {
	TotalWork     int `json:"total_work"`
	TotalWorkTime int `json:"total_work_time"`
	WorkDays      int `json:"work_days"`
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	want := summaryPayload{TotalWork: 150, TotalWorkTime: 120, WorkDays: 2}
	if err := c.Set(ctx, "task-summary:1", want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got summaryPayload
	found, err := c.Get(ctx, "task-summary:1", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() found = false, want true")
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()

	var got summaryPayload
	found, err := c.Get(context.Background(), "task-summary:999", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true, want false for missing key")
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "task-summary:1", summaryPayload{TotalWork: 10}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "task-summary:1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var got summaryPayload
	found, err := c.Get(ctx, "task-summary:1", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true after Delete(), want false")
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c := NewMemoryCache(10 * time.Millisecond)
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "task-summary:1", summaryPayload{TotalWork: 10}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	var got summaryPayload
	found, err := c.Get(ctx, "task-summary:1", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true after TTL expiry, want false")
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	var got summaryPayload
	c.Get(ctx, "a", &got) // miss
	c.Set(ctx, "a", summaryPayload{TotalWork: 1})
	c.Get(ctx, "a", &got) // hit
	c.Delete(ctx, "a")

	stats := c.Stats()
	if stats.Hits != 1 {
		t.Errorf("Hits = %d, want 1", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
	if stats.Sets != 1 {
		t.Errorf("Sets = %d, want 1", stats.Sets)
	}
	if stats.Deletes != 1 {
		t.Errorf("Deletes = %d, want 1", stats.Deletes)
	}
	if stats.TotalGets != 2 {
		t.Errorf("TotalGets = %d, want 2", stats.TotalGets)
	}
	if stats.HitRate != 50 {
		t.Errorf("HitRate = %v, want 50", stats.HitRate)
	}
}

// setupRedisCache creates a Redis-backed cache for testing.
// Skips the test when Redis is not reachable.
func setupRedisCache(t *testing.T, prefix string) (*RedisCache, func()) {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: testRedisAddr,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	cleanupKeys(ctx, client, prefix+"*")

	c := NewRedisCache(client, prefix, 5*time.Minute)

	cleanup := func() {
		cleanupKeys(ctx, client, prefix+"*")
		client.Close()
	}

	return c, cleanup
}

// cleanupKeys removes all keys matching the pattern.
func cleanupKeys(ctx context.Context, client *redis.Client, pattern string) {
	var cursor uint64
	for {
		keys, nextCursor, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c, cleanup := setupRedisCache(t, "testcache:")
	defer cleanup()
	ctx := context.Background()

	want := summaryPayload{TotalWork: 60, TotalWorkTime: 90, WorkDays: 2}
	if err := c.Set(ctx, "task-summary:1", want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got summaryPayload
	found, err := c.Get(ctx, "task-summary:1", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() found = false, want true")
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	if err := c.Delete(ctx, "task-summary:1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	found, err = c.Get(ctx, "task-summary:1", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true after Delete(), want false")
	}
}

func TestRedisCache_MissIsNotAnError(t *testing.T) {
	c, cleanup := setupRedisCache(t, "testcache:")
	defer cleanup()

	var got summaryPayload
	found, err := c.Get(context.Background(), "never-set", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true for missing key, want false")
	}

	stats := c.Stats()
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
	if stats.Errors != 0 {
		t.Errorf("Errors = %d, want 0", stats.Errors)
	}
}

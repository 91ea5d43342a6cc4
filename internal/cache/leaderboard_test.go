package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"app/internal/model"

	"github.com/redis/go-redis/v9"
)

func testCache(t *testing.T) *LeaderboardCache {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set, skip Redis integration test")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() {
		client.Del(context.Background(), leaderboardKey)
		client.Close()
	})
	return NewLeaderboardCache(client, 30*time.Second)
}

func TestGetEmptyCacheIsMiss(t *testing.T) {
	c := testCache(t)
	c.client.Del(context.Background(), leaderboardKey)

	_, err := c.Get(context.Background())
	if !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss for an empty cache, got %v", err)
	}
}

func TestSetThenGet(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	want := []model.LeaderboardEntry{
		{UserID: "u1", DisplayName: "Asha", TotalPoints: 900, ZenScore: 40, Level: 2},
		{UserID: "u2", DisplayName: "Ben", TotalPoints: 500, ZenScore: 20, Level: 2},
	}
	if err := c.Set(ctx, want); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := c.Get(ctx)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	if got[0].UserID != "u1" || got[0].TotalPoints != 900 {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
}

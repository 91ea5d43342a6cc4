package service

import (
	"context"
	"testing"

	"app/internal/model"

	"github.com/rs/zerolog"
)

type fakeLeaderboardRepo struct {
	entries []model.LeaderboardEntry
	calls   int
}

func (f *fakeLeaderboardRepo) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	f.calls++
	if limit < len(f.entries) {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func TestLeaderboardTopWithoutCache(t *testing.T) {
	repo := &fakeLeaderboardRepo{entries: []model.LeaderboardEntry{
		{UserID: "u2", TotalPoints: 900, ZenScore: 40, Level: 2},
		{UserID: "u1", TotalPoints: 70, ZenScore: 2, Level: 1},
	}}
	svc := NewLeaderboardService(repo, nil, 10, zerolog.Nop())

	entries, err := svc.Top(context.Background())
	if err != nil {
		t.Fatalf("Top returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != "u2" {
		t.Fatalf("expected highest lifetime points first, got %s", entries[0].UserID)
	}
}

func TestLeaderboardHonorsSize(t *testing.T) {
	repo := &fakeLeaderboardRepo{entries: []model.LeaderboardEntry{
		{UserID: "u1"}, {UserID: "u2"}, {UserID: "u3"},
	}}
	svc := NewLeaderboardService(repo, nil, 2, zerolog.Nop())

	entries, err := svc.Top(context.Background())
	if err != nil {
		t.Fatalf("Top returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected the configured top 2, got %d", len(entries))
	}
}

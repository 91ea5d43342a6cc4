package scoring

import (
	"testing"
	"time"

	"app/internal/model"
)

func TestPointsForSession(t *testing.T) {
	if got := PointsForSession(300); got != 70 {
		t.Fatalf("expected 70 points for a 5 minute session, got %d", got)
	}
	if got := PointsForSession(60); got != 30 {
		t.Fatalf("expected 30 points for a 1 minute session, got %d", got)
	}
	// Partial minutes below 60s contribute nothing beyond the floor.
	if got := PointsForSession(59); got != 29 {
		t.Fatalf("expected 29 points for a 59s session, got %d", got)
	}
	if got := PointsForSession(0); got != 20 {
		t.Fatalf("expected bare completion bonus for 0s, got %d", got)
	}
}

func TestZenScoreFirstSession(t *testing.T) {
	stats := model.UserStats{
		CurrentStreak: 1,
		TotalMinutes:  5,
		TotalSessions: 1,
	}
	// round(1/30*40 + 5/1000*30 + 1/50*30) = round(2.08) = 2
	if got := ZenScore(stats); got != 2 {
		t.Fatalf("expected zen score 2, got %d", got)
	}
}

func TestZenScoreCapped(t *testing.T) {
	stats := model.UserStats{
		CurrentStreak: 10000,
		TotalMinutes:  1000000,
		TotalSessions: 99999,
	}
	if got := ZenScore(stats); got != 100 {
		t.Fatalf("expected capped zen score 100, got %d", got)
	}
	if got := ZenScore(model.UserStats{}); got != 0 {
		t.Fatalf("expected zen score 0 for zero stats, got %d", got)
	}
}

func TestNextStreakFirstSession(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	if got := NextStreak(0, nil, now); got != 1 {
		t.Fatalf("expected streak 1 with no prior session, got %d", got)
	}
}

func TestNextStreakSameDay(t *testing.T) {
	last := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)
	if got := NextStreak(4, &last, now); got != 4 {
		t.Fatalf("second session same day must not increment streak, got %d", got)
	}
}

func TestNextStreakConsecutiveDay(t *testing.T) {
	last := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 11, 0, 5, 0, 0, time.UTC)
	if got := NextStreak(4, &last, now); got != 5 {
		t.Fatalf("consecutive day should increment streak, got %d", got)
	}
}

func TestNextStreakGapResets(t *testing.T) {
	last := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 13, 12, 0, 0, 0, time.UTC)
	if got := NextStreak(9, &last, now); got != 1 {
		t.Fatalf("gap of 2+ days should reset streak to 1, got %d", got)
	}
}

func TestApplySessionFirstSession(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	stats := model.UserStats{UserID: "u1", Level: 1}

	points := ApplySession(&stats, 300, now)

	if points != 70 {
		t.Fatalf("expected 70 points awarded, got %d", points)
	}
	if stats.TotalPoints != 70 || stats.CurrentPoints != 70 {
		t.Fatalf("expected both balances at 70, got total=%d current=%d", stats.TotalPoints, stats.CurrentPoints)
	}
	if stats.TotalMinutes != 5 || stats.TotalSessions != 1 {
		t.Fatalf("unexpected counters: minutes=%d sessions=%d", stats.TotalMinutes, stats.TotalSessions)
	}
	if stats.CurrentStreak != 1 || stats.LongestStreak != 1 {
		t.Fatalf("unexpected streaks: current=%d longest=%d", stats.CurrentStreak, stats.LongestStreak)
	}
	if stats.Level != 1 {
		t.Fatalf("expected level 1, got %d", stats.Level)
	}
	if stats.ZenScore != 2 {
		t.Fatalf("expected zen score 2, got %d", stats.ZenScore)
	}
	if stats.LastSessionDate == nil || !stats.LastSessionDate.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected last session date truncated to 2025-06-10, got %v", stats.LastSessionDate)
	}
}

func TestApplySessionBalancesMoveTogether(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	stats := model.UserStats{
		TotalPoints:   900,
		CurrentPoints: 400, // part of the lifetime total already spent
		TotalMinutes:  90,
		TotalSessions: 12,
		CurrentStreak: 3,
		LongestStreak: 6,
		Level:         2,
	}

	points := ApplySession(&stats, 125, now)

	if points != 40 {
		t.Fatalf("expected 40 points for 125s, got %d", points)
	}
	if stats.TotalPoints != 940 || stats.CurrentPoints != 440 {
		t.Fatalf("both balances must move by the award: total=%d current=%d", stats.TotalPoints, stats.CurrentPoints)
	}
	if stats.TotalMinutes != 92 {
		t.Fatalf("expected 92 total minutes, got %d", stats.TotalMinutes)
	}
	if stats.LongestStreak != 6 {
		t.Fatalf("longest streak must not regress, got %d", stats.LongestStreak)
	}
}

func TestApplySessionLevelThreshold(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	stats := model.UserStats{TotalPoints: 460, CurrentPoints: 460, Level: 1}

	ApplySession(&stats, 300, now)

	if stats.TotalPoints != 530 {
		t.Fatalf("expected 530 total points, got %d", stats.TotalPoints)
	}
	if stats.Level != 2 {
		t.Fatalf("crossing 500 lifetime points should reach level 2, got %d", stats.Level)
	}
}

func TestApplySessionLongestStreakFollowsCurrent(t *testing.T) {
	last := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	stats := model.UserStats{
		CurrentStreak:   5,
		LongestStreak:   5,
		LastSessionDate: &last,
	}

	ApplySession(&stats, 60, now)

	if stats.CurrentStreak != 6 || stats.LongestStreak != 6 {
		t.Fatalf("longest streak should track a new record: current=%d longest=%d", stats.CurrentStreak, stats.LongestStreak)
	}
}

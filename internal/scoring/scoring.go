// Package scoring holds the pure gamification arithmetic: points earned per
// session, the composite zen score, streak transitions, and the full
// stats update applied by the session ledger. Nothing here touches I/O, so
// the ledger transaction can replay these functions on retry.
package scoring

import (
	"math"
	"time"

	"app/internal/model"
)

// MinSessionSeconds is the shortest session the ledger counts. Anything
// shorter is ignored upstream as a no-op, not an error.
const MinSessionSeconds = 10

// PointsPerLevel is the lifetime-point cost of each level step.
const PointsPerLevel = 500

// PointsForSession returns the points earned by a completed session:
// 10 points per full minute plus a flat 20-point completion bonus.
func PointsForSession(durationSeconds int) int {
	basePoints := durationSeconds * 10 / 60
	return basePoints + 20
}

// ZenScore computes the 0-100 engagement score from a post-session stats
// snapshot. Three capped sub-scores: consistency (streak, 40%), experience
// (minutes, 30%) and dedication (sessions, 30%).
func ZenScore(stats model.UserStats) int {
	consistency := math.Min(float64(stats.CurrentStreak)/30, 1) * 40
	experience := math.Min(float64(stats.TotalMinutes)/1000, 1) * 30
	dedication := math.Min(float64(stats.TotalSessions)/50, 1) * 30
	return int(math.Round(consistency + experience + dedication))
}

// Level returns the level derived from lifetime points.
func Level(totalPoints int) int {
	return totalPoints/PointsPerLevel + 1
}

// DateOnly truncates t to midnight in its own location. Streaks compare
// calendar days, not wall-clock time.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextStreak returns the streak value after a session on today's date.
// Same-day repeats leave the streak unchanged, a consecutive day increments
// it, and a gap of two or more days resets it to 1 (the session itself is
// day one of the new streak).
func NextStreak(current int, lastSessionDate *time.Time, now time.Time) int {
	if lastSessionDate == nil {
		return 1
	}
	today := DateOnly(now)
	last := DateOnly(*lastSessionDate)
	// Rounding absorbs DST-shortened or -lengthened days.
	diffDays := int(math.Round(today.Sub(last).Hours() / 24))
	switch {
	case diffDays == 0:
		return current
	case diffDays == 1:
		return current + 1
	default:
		return 1
	}
}

// ApplySession advances stats by one accepted session and returns the points
// awarded. The zen score is recomputed from the fully updated record, not
// the pre-session snapshot.
func ApplySession(stats *model.UserStats, durationSeconds int, now time.Time) int {
	points := PointsForSession(durationSeconds)

	stats.CurrentStreak = NextStreak(stats.CurrentStreak, stats.LastSessionDate, now)
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}

	stats.TotalPoints += points
	stats.CurrentPoints += points
	stats.TotalMinutes += durationSeconds / 60
	stats.TotalSessions++
	stats.Level = Level(stats.TotalPoints)

	sessionDate := DateOnly(now)
	stats.LastSessionDate = &sessionDate

	stats.ZenScore = ZenScore(*stats)
	return points
}

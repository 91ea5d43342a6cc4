package model

import "time"

// StatsSchemaVersion is the current shape of the user_stats row. Version 1
// predates the spendable balance split; loading a v1 row backfills
// current_points from total_points (see repository.LedgerRepository).
const StatsSchemaVersion = 2

// User represents a user profile in the system
type User struct {
	UserID      string    `db:"user_id" json:"user_id"`
	Email       string    `db:"email" json:"email"`
	DisplayName string    `db:"display_name" json:"display_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// UserStats holds the gamification ledger for a single user.
//
// TotalPoints is lifetime earnings and never decreases; CurrentPoints is the
// spendable wallet and is the only field a redemption touches. CurrentPoints
// never exceeds TotalPoints and never goes negative.
type UserStats struct {
	UserID          string     `db:"user_id" json:"user_id"`
	TotalPoints     int        `db:"total_points" json:"total_points"`
	CurrentPoints   int        `db:"current_points" json:"current_points"`
	TotalMinutes    int        `db:"total_minutes" json:"total_minutes"`
	TotalSessions   int        `db:"total_sessions" json:"total_sessions"`
	CurrentStreak   int        `db:"current_streak" json:"current_streak"`
	LongestStreak   int        `db:"longest_streak" json:"longest_streak"`
	LastSessionDate *time.Time `db:"last_session_date" json:"last_session_date,omitempty"`
	ZenScore        int        `db:"zen_score" json:"zen_score"`
	Level           int        `db:"level" json:"level"`
	SchemaVersion   int        `db:"schema_version" json:"-"`
}

// Profile is the aggregate returned to the client: profile row plus the
// stats and subscription sub-records.
type Profile struct {
	User         User          `json:"user"`
	Stats        UserStats     `json:"stats"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

package model

import "time"

// Session is one completed practice session. Rows are append-only: they are
// written once when the ledger accepts a session and never updated.
type Session struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	PresetID        string    `db:"preset_id" json:"preset_id"`
	DurationSeconds int       `db:"duration_seconds" json:"duration_seconds"`
	PointsAwarded   int       `db:"points_awarded" json:"points_awarded"`
	CompletedAt     time.Time `db:"completed_at" json:"completed_at"`
}

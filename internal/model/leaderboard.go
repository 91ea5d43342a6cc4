package model

// LeaderboardEntry is one row of the ranked lifetime-points projection.
type LeaderboardEntry struct {
	UserID      string `db:"user_id" json:"user_id"`
	DisplayName string `db:"display_name" json:"display_name"`
	TotalPoints int    `db:"total_points" json:"total_points"`
	ZenScore    int    `db:"zen_score" json:"zen_score"`
	Level       int    `db:"level" json:"level"`
}

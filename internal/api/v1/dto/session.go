package dto

import "time"

// SessionCompleteDTO is the completed-session event emitted by the timer UI.
type SessionCompleteDTO struct {
	PresetID        string `json:"preset_id" validate:"required"`
	DurationSeconds int    `json:"duration_seconds" validate:"gte=0"`
}

// SessionResponseDTO is returned in API responses for recorded sessions
type SessionResponseDTO struct {
	ID              string    `json:"id"`
	PresetID        string    `json:"preset_id"`
	DurationSeconds int       `json:"duration_seconds"`
	PointsAwarded   int       `json:"points_awarded"`
	CompletedAt     time.Time `json:"completed_at"`
}

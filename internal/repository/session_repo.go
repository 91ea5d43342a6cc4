package repository

import (
	"context"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository is the append-only session history. Rows are written
// once after the stats commit and never mutated.
type SessionRepository interface {
	Insert(ctx context.Context, s *model.Session) error
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Session, error)
}

type sessionRepo struct {
	pool *pgxpool.Pool
}

// NewSessionRepo creates a new SessionRepository.
func NewSessionRepo(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepo{pool: pool}
}

func (r *sessionRepo) Insert(ctx context.Context, s *model.Session) error {
	const q = `
        INSERT INTO sessions (id, user_id, preset_id, duration_seconds, points_awarded, completed_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	if _, err := r.pool.Exec(ctx, q, s.ID, s.UserID, s.PresetID, s.DurationSeconds, s.PointsAwarded, s.CompletedAt); err != nil {
		return fmt.Errorf("inserting session for user %s: %w", s.UserID, err)
	}
	return nil
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.Session, error) {
	const q = `
        SELECT id, user_id, preset_id, duration_seconds, points_awarded, completed_at
        FROM sessions
        WHERE user_id = $1
        ORDER BY completed_at DESC
        LIMIT $2
    `
	rows, err := r.pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.PresetID, &s.DurationSeconds, &s.PointsAwarded, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading session rows: %w", err)
	}
	return sessions, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/model"
	"app/internal/scoring"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository owns the atomic stats read-modify-write for completed
// sessions. The paired history append lives in SessionRepository: history
// must never be written without a committed stats update, but a committed
// stats update with a lost history row is tolerated (history is not used to
// recompute balances).
type LedgerRepository interface {
	// ApplySession atomically advances the user's stats by one completed
	// session and returns the updated stats and the points awarded.
	// Returns ErrUserNotFound when no stats row exists for the user.
	ApplySession(ctx context.Context, userID string, durationSeconds int, now time.Time) (*model.UserStats, int, error)
}

type ledgerRepo struct {
	pool *pgxpool.Pool
}

// NewLedgerRepo creates a new LedgerRepository.
func NewLedgerRepo(pool *pgxpool.Pool) LedgerRepository {
	return &ledgerRepo{pool: pool}
}

const selectStatsForUpdateQ = `
    SELECT user_id, total_points, current_points, total_minutes, total_sessions,
           current_streak, longest_streak, last_session_date, zen_score, level, schema_version
    FROM user_stats
    WHERE user_id = $1
    FOR UPDATE
`

const updateStatsQ = `
    UPDATE user_stats
    SET total_points = $2,
        current_points = $3,
        total_minutes = $4,
        total_sessions = $5,
        current_streak = $6,
        longest_streak = $7,
        last_session_date = $8,
        zen_score = $9,
        level = $10,
        schema_version = $11,
        updated_at = NOW()
    WHERE user_id = $1
`

// scanStats reads a user_stats row. current_points is nullable: rows written
// before the wallet split carry NULL there and report schema version 1.
func scanStats(row pgx.Row) (*model.UserStats, error) {
	var s model.UserStats
	var currentPoints *int
	if err := row.Scan(
		&s.UserID,
		&s.TotalPoints,
		&currentPoints,
		&s.TotalMinutes,
		&s.TotalSessions,
		&s.CurrentStreak,
		&s.LongestStreak,
		&s.LastSessionDate,
		&s.ZenScore,
		&s.Level,
		&s.SchemaVersion,
	); err != nil {
		return nil, err
	}
	if currentPoints != nil {
		s.CurrentPoints = *currentPoints
	} else {
		// Read-side default only; persisting the backfill is the ledger's job.
		s.CurrentPoints = s.TotalPoints
		s.SchemaVersion = 1
	}
	return &s, nil
}

// ApplySession runs the ledger update as one serializable transaction with
// bounded retry on conflict. Legacy rows are upgraded in the same write:
// the spendable balance is backfilled from lifetime points and the schema
// version bumped before the session is applied.
func (r *ledgerRepo) ApplySession(ctx context.Context, userID string, durationSeconds int, now time.Time) (*model.UserStats, int, error) {
	var stats *model.UserStats
	var points int

	err := inSerializableTx(ctx, r.pool, func(tx pgx.Tx) error {
		s, err := scanStats(tx.QueryRow(ctx, selectStatsForUpdateQ, userID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUserNotFound
			}
			return fmt.Errorf("loading stats for user %s: %w", userID, err)
		}
		if s.SchemaVersion < model.StatsSchemaVersion {
			s.SchemaVersion = model.StatsSchemaVersion
		}

		points = scoring.ApplySession(s, durationSeconds, now)

		if _, err := tx.Exec(ctx, updateStatsQ,
			s.UserID,
			s.TotalPoints,
			s.CurrentPoints,
			s.TotalMinutes,
			s.TotalSessions,
			s.CurrentStreak,
			s.LongestStreak,
			s.LastSessionDate,
			s.ZenScore,
			s.Level,
			s.SchemaVersion,
		); err != nil {
			return fmt.Errorf("updating stats for user %s: %w", userID, err)
		}
		stats = s
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return stats, points, nil
}

package repository

import (
	"context"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LeaderboardRepository is the read-only ranked projection over lifetime
// points. It never joins the per-user transactions and may observe stale
// snapshots.
type LeaderboardRepository interface {
	Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

type leaderboardRepo struct {
	pool *pgxpool.Pool
}

// NewLeaderboardRepo creates a new LeaderboardRepository.
func NewLeaderboardRepo(pool *pgxpool.Pool) LeaderboardRepository {
	return &leaderboardRepo{pool: pool}
}

func (r *leaderboardRepo) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	const q = `
        SELECT s.user_id, p.display_name, s.total_points, s.zen_score, s.level
        FROM user_stats s
        JOIN user_profiles p ON p.user_id = s.user_id
        ORDER BY s.total_points DESC, s.user_id
        LIMIT $1
    `
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("querying leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.TotalPoints, &e.ZenScore, &e.Level); err != nil {
			return nil, fmt.Errorf("scanning leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading leaderboard rows: %w", err)
	}
	return entries, nil
}

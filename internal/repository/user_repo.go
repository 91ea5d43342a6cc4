package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	// CreateUser bootstraps a profile with zeroed stats and a free
	// subscription in a single transaction.
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// GetProfile returns the profile aggregate: user row, stats and
	// subscription. Returns ErrUserNotFound when the user does not exist.
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
}

type userRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) UserRepository {
	return &userRepo{pool: pool}
}

func (r *userRepo) CreateUser(ctx context.Context, u *model.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction for user create: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	const profileQ = `
        INSERT INTO user_profiles (user_id, email, display_name)
        VALUES ($1, $2, $3)
        RETURNING created_at, updated_at
    `
	if err := tx.QueryRow(ctx, profileQ, u.UserID, u.Email, u.DisplayName).Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("inserting profile for user %s: %w", u.UserID, err)
	}

	const statsQ = `
        INSERT INTO user_stats (user_id, total_points, current_points, total_minutes, total_sessions,
                                current_streak, longest_streak, last_session_date, zen_score, level, schema_version)
        VALUES ($1, 0, 0, 0, 0, 0, 0, NULL, 0, 1, $2)
    `
	if _, err := tx.Exec(ctx, statsQ, u.UserID, model.StatsSchemaVersion); err != nil {
		return fmt.Errorf("inserting stats for user %s: %w", u.UserID, err)
	}

	const subQ = `
        INSERT INTO subscriptions (user_id, status)
        VALUES ($1, $2)
    `
	if _, err := tx.Exec(ctx, subQ, u.UserID, model.SubscriptionFree); err != nil {
		return fmt.Errorf("inserting subscription for user %s: %w", u.UserID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing user create for %s: %w", u.UserID, err)
	}
	return nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	const q = `SELECT user_id, email, display_name, created_at, updated_at FROM user_profiles WHERE user_id = $1`
	row := r.pool.QueryRow(ctx, q, id)
	if err := row.Scan(&u.UserID, &u.Email, &u.DisplayName, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch user %s: %w", id, err)
	}
	return &u, nil
}

func (r *userRepo) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	u, err := r.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	const statsQ = `
        SELECT user_id, total_points, current_points, total_minutes, total_sessions,
               current_streak, longest_streak, last_session_date, zen_score, level, schema_version
        FROM user_stats
        WHERE user_id = $1
    `
	stats, err := scanStats(r.pool.QueryRow(ctx, statsQ, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch stats for user %s: %w", id, err)
	}

	sub, err := scanSubscription(r.pool.QueryRow(ctx, selectSubscriptionQ, id))
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("fetch subscription for user %s: %w", id, err)
	}

	return &model.Profile{User: *u, Stats: *stats, Subscription: sub}, nil
}

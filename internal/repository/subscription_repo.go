package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubscriptionRepository reads and writes the per-user billing record. The
// write side is driven by the external payment collaborator; the core only
// ever reads it through the entitlement gate.
type SubscriptionRepository interface {
	// Get returns the user's subscription, or nil when none exists.
	Get(ctx context.Context, userID string) (*model.Subscription, error)
	// Upsert replaces the user's subscription with the given record.
	Upsert(ctx context.Context, sub *model.Subscription) error
	// Cancel flips the status to canceled without touching the period end,
	// so paid-for access survives until it expires.
	Cancel(ctx context.Context, userID string) error
}

type subscriptionRepo struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepo creates a new SubscriptionRepository.
func NewSubscriptionRepo(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepo{pool: pool}
}

const selectSubscriptionQ = `
    SELECT user_id, status, plan_id, billing_interval, current_period_end, updated_at
    FROM subscriptions
    WHERE user_id = $1
`

func scanSubscription(row pgx.Row) (*model.Subscription, error) {
	var s model.Subscription
	if err := row.Scan(
		&s.UserID,
		&s.Status,
		&s.PlanID,
		&s.Interval,
		&s.CurrentPeriodEnd,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subscriptionRepo) Get(ctx context.Context, userID string) (*model.Subscription, error) {
	sub, err := scanSubscription(r.pool.QueryRow(ctx, selectSubscriptionQ, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch subscription for user %s: %w", userID, err)
	}
	return sub, nil
}

func (r *subscriptionRepo) Upsert(ctx context.Context, sub *model.Subscription) error {
	const q = `
        INSERT INTO subscriptions (user_id, status, plan_id, billing_interval, current_period_end, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        ON CONFLICT (user_id) DO UPDATE
        SET status = EXCLUDED.status,
            plan_id = EXCLUDED.plan_id,
            billing_interval = EXCLUDED.billing_interval,
            current_period_end = EXCLUDED.current_period_end,
            updated_at = NOW()
    `
	if _, err := r.pool.Exec(ctx, q, sub.UserID, sub.Status, sub.PlanID, sub.Interval, sub.CurrentPeriodEnd); err != nil {
		return fmt.Errorf("upserting subscription for user %s: %w", sub.UserID, err)
	}
	return nil
}

func (r *subscriptionRepo) Cancel(ctx context.Context, userID string) error {
	const q = `
        UPDATE subscriptions
        SET status = $2, updated_at = NOW()
        WHERE user_id = $1
    `
	tag, err := r.pool.Exec(ctx, q, userID, model.SubscriptionCanceled)
	if err != nil {
		return fmt.Errorf("canceling subscription for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentRepository logs success/failure reports from the external payment
// processor. Append-only.
type PaymentRepository interface {
	Insert(ctx context.Context, p *model.Payment) error
}

type paymentRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentRepo creates a new PaymentRepository.
func NewPaymentRepo(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepo{pool: pool}
}

func (r *paymentRepo) Insert(ctx context.Context, p *model.Payment) error {
	const q = `
        INSERT INTO payments (id, user_id, amount, currency, status, method, plan_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        RETURNING created_at
    `
	if err := r.pool.QueryRow(ctx, q, p.ID, p.UserID, p.Amount, p.Currency, p.Status, p.Method, p.PlanID).Scan(&p.CreatedAt); err != nil {
		return fmt.Errorf("inserting payment for user %s: %w", p.UserID, err)
	}
	return nil
}

package repository

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"app/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RedemptionRepository owns the atomic coupon redemption: entitlement check,
// balance debit, code mint and history append happen in one transaction.
// A debit without an issued code, or a code without a debit, would leave the
// user without their receipt, so unlike session recording nothing here is
// best-effort.
type RedemptionRepository interface {
	// Redeem debits the coupon cost from the user's spendable balance and
	// appends the redemption record. Returns ErrUserNotFound, ErrNotEntitled
	// or ErrInsufficientBalance on rejection; on success the returned record
	// carries the freshly minted code.
	Redeem(ctx context.Context, userID string, coupon model.Coupon, now time.Time) (*model.Redemption, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Redemption, error)
}

type redemptionRepo struct {
	pool *pgxpool.Pool
}

// NewRedemptionRepo creates a new RedemptionRepository.
func NewRedemptionRepo(pool *pgxpool.Pool) RedemptionRepository {
	return &redemptionRepo{pool: pool}
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// mintCode builds a provider-prefixed coupon code such as AMA-X4K9ZQ-2026.
func mintCode(provider string, now time.Time) (string, error) {
	prefix := strings.ToUpper(provider)
	prefix = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r
		}
		return -1
	}, prefix)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	if prefix == "" {
		prefix = "ZEN"
	}

	suffix := make([]byte, 6)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generating coupon code: %w", err)
		}
		suffix[i] = codeAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%s-%s-%d", prefix, suffix, now.Year()), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *redemptionRepo) Redeem(ctx context.Context, userID string, coupon model.Coupon, now time.Time) (*model.Redemption, error) {
	var redemption *model.Redemption

	err := inSerializableTx(ctx, r.pool, func(tx pgx.Tx) error {
		stats, err := scanStats(tx.QueryRow(ctx, selectStatsForUpdateQ, userID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUserNotFound
			}
			return fmt.Errorf("loading stats for user %s: %w", userID, err)
		}

		sub, err := scanSubscription(tx.QueryRow(ctx, selectSubscriptionQ, userID))
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("loading subscription for user %s: %w", userID, err)
		}
		if !sub.IsEntitled(now) {
			return ErrNotEntitled
		}

		// scanStats already defaults a legacy NULL current_points to the
		// lifetime total. The backfill itself is not persisted here; the
		// ledger writes it on the next session.
		balance := stats.CurrentPoints
		if balance < coupon.Cost {
			return ErrInsufficientBalance
		}

		const debitQ = `UPDATE user_stats SET current_points = $2, updated_at = NOW() WHERE user_id = $1`
		if _, err := tx.Exec(ctx, debitQ, userID, balance-coupon.Cost); err != nil {
			return fmt.Errorf("debiting balance for user %s: %w", userID, err)
		}

		const insertQ = `
            INSERT INTO redemptions (id, user_id, coupon_id, provider, code, cost, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
        `
		// Collisions on the unique code index are astronomically rare;
		// regenerate a few times rather than failing the redemption.
		for attempt := 0; attempt < 3; attempt++ {
			code, err := mintCode(coupon.Provider, now)
			if err != nil {
				return err
			}
			rec := &model.Redemption{
				ID:        uuid.NewString(),
				UserID:    userID,
				CouponID:  coupon.ID,
				Provider:  coupon.Provider,
				Code:      code,
				Cost:      coupon.Cost,
				CreatedAt: now,
			}
			_, err = tx.Exec(ctx, insertQ, rec.ID, rec.UserID, rec.CouponID, rec.Provider, rec.Code, rec.Cost, rec.CreatedAt)
			if err == nil {
				redemption = rec
				return nil
			}
			if !isUniqueViolation(err) {
				return fmt.Errorf("inserting redemption for user %s: %w", userID, err)
			}
		}
		return fmt.Errorf("minting unique coupon code for user %s: exhausted attempts", userID)
	})
	if err != nil {
		return nil, err
	}
	return redemption, nil
}

func (r *redemptionRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.Redemption, error) {
	const q = `
        SELECT id, user_id, coupon_id, provider, code, cost, created_at
        FROM redemptions
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	rows, err := r.pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing redemptions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var redemptions []model.Redemption
	for rows.Next() {
		var rec model.Redemption
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.CouponID, &rec.Provider, &rec.Code, &rec.Cost, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning redemption row: %w", err)
		}
		redemptions = append(redemptions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading redemption rows: %w", err)
	}
	return redemptions, nil
}

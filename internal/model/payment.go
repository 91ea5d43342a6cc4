package model

import "time"

// Payment is a success/failure report from the external payment processor,
// logged when a subscription upgrade is applied.
type Payment struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Amount    int       `db:"amount" json:"amount"`
	Currency  string    `db:"currency" json:"currency"`
	Status    string    `db:"status" json:"status"`
	Method    string    `db:"method" json:"method"`
	PlanID    string    `db:"plan_id" json:"plan_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

package model

import "time"

// Coupon is a catalog entry. Catalog data is static reference data; the
// server-side catalog is the authoritative source of Cost, never the client.
type Coupon struct {
	ID           string `json:"id"`
	Provider     string `json:"provider"`
	Description  string `json:"description"`
	ValueDisplay string `json:"value_display"`
	Cost         int    `json:"cost"`
}

// Redemption records one spent coupon. Append-only; Code is the user's only
// receipt and is unique across all redemptions.
type Redemption struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	CouponID  string    `db:"coupon_id" json:"coupon_id"`
	Provider  string    `db:"provider" json:"provider"`
	Code      string    `db:"code" json:"code"`
	Cost      int       `db:"cost" json:"cost"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

package dto

import "time"

// RedeemDTO is an incoming redemption request. Only the coupon ID is taken
// from the client; the cost comes from the server-side catalog.
type RedeemDTO struct {
	CouponID string `json:"coupon_id" validate:"required"`
}

// RedeemResponseDTO reports the outcome of a redemption attempt.
type RedeemResponseDTO struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// RedemptionResponseDTO is one redemption history entry.
type RedemptionResponseDTO struct {
	ID        string    `json:"id"`
	CouponID  string    `json:"coupon_id"`
	Provider  string    `json:"provider"`
	Code      string    `json:"code"`
	Cost      int       `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
}

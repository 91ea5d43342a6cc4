package dto

import "time"

// SubscriptionUpgradeDTO is the success report forwarded after the external
// payment processor confirms a charge.
type SubscriptionUpgradeDTO struct {
	PlanID string `json:"plan_id" validate:"required"`
	Method string `json:"method" validate:"required,oneof=upi card netbanking"`
}

// SubscriptionResponseDTO is returned in API responses for subscriptions
type SubscriptionResponseDTO struct {
	Status           string     `json:"status"`
	PlanID           *string    `json:"plan_id,omitempty"`
	Interval         *string    `json:"interval,omitempty"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
}

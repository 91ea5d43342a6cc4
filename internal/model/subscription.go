package model

import "time"

// SubscriptionStatus enumerates the billing states reported by the payment
// collaborator.
type SubscriptionStatus string

const (
	SubscriptionFree     SubscriptionStatus = "free"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
)

// PlanInterval is the billing cadence of a paid plan.
type PlanInterval string

const (
	IntervalMonth PlanInterval = "month"
	IntervalYear  PlanInterval = "year"
)

// Subscription is the per-user billing record written by the payment
// collaborator and read by the entitlement gate.
type Subscription struct {
	UserID           string             `db:"user_id" json:"user_id"`
	Status           SubscriptionStatus `db:"status" json:"status"`
	PlanID           *string            `db:"plan_id" json:"plan_id,omitempty"`
	Interval         *PlanInterval      `db:"billing_interval" json:"interval,omitempty"`
	CurrentPeriodEnd *time.Time         `db:"current_period_end" json:"current_period_end,omitempty"`
	UpdatedAt        time.Time          `db:"updated_at" json:"updated_at"`
}

// IsEntitled reports whether the subscription grants premium access at the
// given instant. A canceled subscription stays entitled until its period end:
// cancellation suppresses renewal, it does not revoke paid-for access.
func (s *Subscription) IsEntitled(now time.Time) bool {
	if s == nil {
		return false
	}
	if s.Status != SubscriptionActive && s.Status != SubscriptionCanceled {
		return false
	}
	if s.CurrentPeriodEnd != nil && now.After(*s.CurrentPeriodEnd) {
		return false
	}
	return true
}

// Plan describes a purchasable subscription tier.
type Plan struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Price    int          `json:"price"`
	Currency string       `json:"currency"`
	Symbol   string       `json:"symbol"`
	Interval PlanInterval `json:"interval"`
}

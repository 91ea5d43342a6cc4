package repository

import "errors"

// ErrUserNotFound is returned when the referenced user record does not exist
// at transaction time. Non-retryable.
var ErrUserNotFound = errors.New("user_not_found")

// ErrNotEntitled is returned when a redemption is attempted without an
// active premium entitlement.
var ErrNotEntitled = errors.New("subscription_required")

// ErrInsufficientBalance is returned when the spendable balance cannot cover
// the coupon cost.
var ErrInsufficientBalance = errors.New("insufficient_points")

// ErrUnknownPlan is returned when an upgrade names a plan that is not in the
// catalog.
var ErrUnknownPlan = errors.New("unknown_plan")

// ErrUnknownCoupon is returned when a redemption names a coupon that is not
// in the catalog.
var ErrUnknownCoupon = errors.New("unknown_coupon")

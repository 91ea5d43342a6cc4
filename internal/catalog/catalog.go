// Package catalog holds the static reward and plan catalogs. Coupon costs
// and plan prices are resolved here, server-side; client-submitted amounts
// are never trusted.
package catalog

import "app/internal/model"

var coupons = []model.Coupon{
	{ID: "amazon-5", Provider: "Amazon", Description: "Gift Card", ValueDisplay: "$5", Cost: 500},
	{ID: "amazon-10", Provider: "Amazon", Description: "Gift Card", ValueDisplay: "$10", Cost: 900},
	{ID: "flipkart-500", Provider: "Flipkart", Description: "Voucher", ValueDisplay: "₹500", Cost: 800},
	{ID: "calm-month", Provider: "Wellness Store", Description: "Yoga Mat Discount", ValueDisplay: "20% OFF", Cost: 250},
	{ID: "spotify-trial", Provider: "Spotify", Description: "Premium Trial", ValueDisplay: "1 Month", Cost: 300},
}

var plans = map[string]model.Plan{
	"pro_monthly": {
		ID:       "pro_monthly",
		Name:     "ZenFlow Pro Monthly",
		Price:    299,
		Currency: "INR",
		Symbol:   "₹",
		Interval: model.IntervalMonth,
	},
	"pro_yearly": {
		ID:       "pro_yearly",
		Name:     "ZenFlow Pro Yearly",
		Price:    2499,
		Currency: "INR",
		Symbol:   "₹",
		Interval: model.IntervalYear,
	},
}

// Coupons returns the redeemable coupon catalog.
func Coupons() []model.Coupon {
	out := make([]model.Coupon, len(coupons))
	copy(out, coupons)
	return out
}

// CouponByID looks a coupon up by ID. Returns false when the ID is not in
// the catalog.
func CouponByID(id string) (model.Coupon, bool) {
	for _, c := range coupons {
		if c.ID == id {
			return c, true
		}
	}
	return model.Coupon{}, false
}

// PlanByID looks a paid plan up by ID.
func PlanByID(id string) (model.Plan, bool) {
	p, ok := plans[id]
	return p, ok
}

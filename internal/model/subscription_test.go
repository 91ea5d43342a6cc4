package model

import (
	"testing"
	"time"
)

func TestIsEntitledNilAndFree(t *testing.T) {
	now := time.Now()
	var missing *Subscription
	if missing.IsEntitled(now) {
		t.Fatal("absent subscription must not be entitled")
	}
	free := &Subscription{Status: SubscriptionFree}
	if free.IsEntitled(now) {
		t.Fatal("free subscription must not be entitled")
	}
	pastDue := &Subscription{Status: SubscriptionPastDue}
	if pastDue.IsEntitled(now) {
		t.Fatal("past_due subscription must not be entitled")
	}
}

func TestIsEntitledActive(t *testing.T) {
	now := time.Now()
	end := now.Add(24 * time.Hour)
	sub := &Subscription{Status: SubscriptionActive, CurrentPeriodEnd: &end}
	if !sub.IsEntitled(now) {
		t.Fatal("active subscription within period must be entitled")
	}
	// No period end recorded yet: treat as entitled.
	open := &Subscription{Status: SubscriptionActive}
	if !open.IsEntitled(now) {
		t.Fatal("active subscription without period end must be entitled")
	}
}

func TestIsEntitledCanceledUntilPeriodEnd(t *testing.T) {
	now := time.Now()
	end := now.Add(24 * time.Hour)
	sub := &Subscription{Status: SubscriptionCanceled, CurrentPeriodEnd: &end}
	if !sub.IsEntitled(now) {
		t.Fatal("canceled subscription must keep access until period end")
	}
}

func TestIsEntitledExpired(t *testing.T) {
	now := time.Now()
	end := now.Add(-time.Minute)
	active := &Subscription{Status: SubscriptionActive, CurrentPeriodEnd: &end}
	if active.IsEntitled(now) {
		t.Fatal("expired active subscription must not be entitled")
	}
	canceled := &Subscription{Status: SubscriptionCanceled, CurrentPeriodEnd: &end}
	if canceled.IsEntitled(now) {
		t.Fatal("expired canceled subscription must not be entitled")
	}
}

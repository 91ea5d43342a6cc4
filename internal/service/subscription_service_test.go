package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

type fakeSubRepo struct {
	sub      *model.Subscription
	canceled bool
}

func (f *fakeSubRepo) Get(ctx context.Context, userID string) (*model.Subscription, error) {
	return f.sub, nil
}

func (f *fakeSubRepo) Upsert(ctx context.Context, sub *model.Subscription) error {
	f.sub = sub
	return nil
}

func (f *fakeSubRepo) Cancel(ctx context.Context, userID string) error {
	if f.sub == nil {
		return repository.ErrUserNotFound
	}
	f.sub.Status = model.SubscriptionCanceled
	f.canceled = true
	return nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u *model.User) error {
	f.users[u.UserID] = u
	return nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	u := f.users[id]
	if u == nil {
		return nil, repository.ErrUserNotFound
	}
	return &model.Profile{User: *u}, nil
}

type fakePaymentRepo struct {
	payments []model.Payment
}

func (f *fakePaymentRepo) Insert(ctx context.Context, p *model.Payment) error {
	f.payments = append(f.payments, *p)
	return nil
}

func newSubService(subRepo *fakeSubRepo, userRepo *fakeUserRepo, payRepo *fakePaymentRepo) SubscriptionService {
	return NewSubscriptionService(subRepo, userRepo, payRepo, nil, "", zerolog.Nop())
}

func TestUpgradeUnknownPlanRejected(t *testing.T) {
	svc := newSubService(&fakeSubRepo{}, &fakeUserRepo{users: map[string]*model.User{}}, &fakePaymentRepo{})

	_, err := svc.Upgrade(context.Background(), "u1", "pro_weekly", "upi")
	if !errors.Is(err, repository.ErrUnknownPlan) {
		t.Fatalf("expected ErrUnknownPlan, got %v", err)
	}
}

func TestUpgradeUnknownUserRejected(t *testing.T) {
	svc := newSubService(&fakeSubRepo{}, &fakeUserRepo{users: map[string]*model.User{}}, &fakePaymentRepo{})

	_, err := svc.Upgrade(context.Background(), "ghost", "pro_monthly", "upi")
	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpgradeMonthlyActivatesAndLogsPayment(t *testing.T) {
	subRepo := &fakeSubRepo{}
	payRepo := &fakePaymentRepo{}
	userRepo := &fakeUserRepo{users: map[string]*model.User{"u1": {UserID: "u1"}}}
	svc := newSubService(subRepo, userRepo, payRepo)

	before := time.Now().UTC()
	sub, err := svc.Upgrade(context.Background(), "u1", "pro_monthly", "upi")
	if err != nil {
		t.Fatalf("Upgrade returned error: %v", err)
	}
	if sub.Status != model.SubscriptionActive {
		t.Fatalf("expected active status, got %s", sub.Status)
	}
	if sub.CurrentPeriodEnd == nil {
		t.Fatal("expected a period end")
	}
	wantEnd := before.AddDate(0, 1, 0)
	if sub.CurrentPeriodEnd.Before(wantEnd.Add(-time.Minute)) || sub.CurrentPeriodEnd.After(wantEnd.Add(time.Minute)) {
		t.Fatalf("expected period end about one month out, got %v", sub.CurrentPeriodEnd)
	}
	if len(payRepo.payments) != 1 {
		t.Fatalf("expected one payment record, got %d", len(payRepo.payments))
	}
	if p := payRepo.payments[0]; p.Amount != 299 || p.Currency != "INR" || p.Status != "success" {
		t.Fatalf("unexpected payment record: %+v", p)
	}
}

func TestUpgradeYearlyPeriodEnd(t *testing.T) {
	subRepo := &fakeSubRepo{}
	userRepo := &fakeUserRepo{users: map[string]*model.User{"u1": {UserID: "u1"}}}
	svc := newSubService(subRepo, userRepo, &fakePaymentRepo{})

	sub, err := svc.Upgrade(context.Background(), "u1", "pro_yearly", "card")
	if err != nil {
		t.Fatalf("Upgrade returned error: %v", err)
	}
	wantEnd := time.Now().UTC().AddDate(1, 0, 0)
	if sub.CurrentPeriodEnd.Before(wantEnd.Add(-time.Minute)) || sub.CurrentPeriodEnd.After(wantEnd.Add(time.Minute)) {
		t.Fatalf("expected period end about one year out, got %v", sub.CurrentPeriodEnd)
	}
}

func TestCancelKeepsPeriodEnd(t *testing.T) {
	end := time.Now().UTC().Add(200 * time.Hour)
	planID := "pro_monthly"
	subRepo := &fakeSubRepo{sub: &model.Subscription{
		UserID:           "u1",
		Status:           model.SubscriptionActive,
		PlanID:           &planID,
		CurrentPeriodEnd: &end,
	}}
	svc := newSubService(subRepo, &fakeUserRepo{users: map[string]*model.User{"u1": {UserID: "u1"}}}, &fakePaymentRepo{})

	if err := svc.Cancel(context.Background(), "u1"); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if subRepo.sub.Status != model.SubscriptionCanceled {
		t.Fatalf("expected canceled status, got %s", subRepo.sub.Status)
	}
	// Cancellation stops renewal, not current-period access.
	if !subRepo.sub.IsEntitled(time.Now().UTC()) {
		t.Fatal("canceled subscription must stay entitled until period end")
	}
}

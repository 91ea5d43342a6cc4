package service

import (
	"context"
	"time"

	"app/internal/catalog"
	"app/internal/model"
	"app/internal/pubsub"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SubscriptionService applies billing reports from the external payment
// processor. It does not talk to the processor itself: by the time Upgrade
// is called, payment has already succeeded.
type SubscriptionService interface {
	Get(ctx context.Context, userID string) (*model.Subscription, error)
	// Upgrade activates the named plan until the end of one billing period
	// and logs the payment report.
	Upgrade(ctx context.Context, userID, planID, method string) (*model.Subscription, error)
	// Cancel stops renewal; entitlement survives until the period end.
	Cancel(ctx context.Context, userID string) error
}

type subscriptionService struct {
	subRepo     repository.SubscriptionRepository
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	publisher   pubsub.Publisher
	eventsTopic string
	logger      zerolog.Logger
}

// NewSubscriptionService creates a new SubscriptionService with a scoped logger.
func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository, paymentRepo repository.PaymentRepository, publisher pubsub.Publisher, eventsTopic string, logger zerolog.Logger) SubscriptionService {
	return &subscriptionService{
		subRepo:     subRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		publisher:   publisher,
		eventsTopic: eventsTopic,
		logger:      logger.With().Str("service", "SubscriptionService").Logger(),
	}
}

func (s *subscriptionService) Get(ctx context.Context, userID string) (*model.Subscription, error) {
	sub, err := s.subRepo.Get(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch subscription")
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) Upgrade(ctx context.Context, userID, planID, method string) (*model.Subscription, error) {
	plan, ok := catalog.PlanByID(planID)
	if !ok {
		return nil, repository.ErrUnknownPlan
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, repository.ErrUserNotFound
	}

	now := time.Now().UTC()
	var periodEnd time.Time
	if plan.Interval == model.IntervalYear {
		periodEnd = now.AddDate(1, 0, 0)
	} else {
		periodEnd = now.AddDate(0, 1, 0)
	}

	interval := plan.Interval
	sub := &model.Subscription{
		UserID:           userID,
		Status:           model.SubscriptionActive,
		PlanID:           &plan.ID,
		Interval:         &interval,
		CurrentPeriodEnd: &periodEnd,
	}
	if err := s.subRepo.Upsert(ctx, sub); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("plan_id", planID).Msg("Failed to upsert subscription")
		return nil, err
	}

	payment := &model.Payment{
		ID:       uuid.NewString(),
		UserID:   userID,
		Amount:   plan.Price,
		Currency: plan.Currency,
		Status:   "success",
		Method:   method,
		PlanID:   plan.ID,
	}
	if err := s.paymentRepo.Insert(ctx, payment); err != nil {
		// The entitlement is already live; a lost payment log must not
		// roll it back.
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to log payment")
	}

	s.publishEvent(ctx, userID, now)

	s.logger.Info().Str("user_id", userID).Str("plan_id", planID).Time("period_end", periodEnd).Msg("Subscription upgraded")
	return sub, nil
}

func (s *subscriptionService) Cancel(ctx context.Context, userID string) error {
	if err := s.subRepo.Cancel(ctx, userID); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to cancel subscription")
		return err
	}
	s.publishEvent(ctx, userID, time.Now().UTC())
	s.logger.Info().Str("user_id", userID).Msg("Subscription canceled")
	return nil
}

func (s *subscriptionService) publishEvent(ctx context.Context, userID string, at time.Time) {
	if s.publisher == nil {
		return
	}
	payload, err := pubsub.Event{Type: "subscription.changed", UserID: userID, OccurredAt: at}.Marshal()
	if err != nil {
		return
	}
	if _, err := s.publisher.Publish(ctx, s.eventsTopic, payload); err != nil {
		s.logger.Warn().Err(err).Str("topic", s.eventsTopic).Msg("Failed to publish change event")
	}
}

package service

import (
	"context"
	"time"

	"app/internal/catalog"
	"app/internal/model"
	"app/internal/pubsub"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// RewardsService spends points against the coupon catalog. The catalog is
// authoritative: the caller names a coupon ID and the cost is resolved
// server-side.
type RewardsService interface {
	Catalog() []model.Coupon
	Redeem(ctx context.Context, userID, couponID string) (*model.Redemption, error)
	History(ctx context.Context, userID string) ([]model.Redemption, error)
}

type rewardsService struct {
	redemptionRepo repository.RedemptionRepository
	publisher      pubsub.Publisher
	eventsTopic    string
	logger         zerolog.Logger
}

// NewRewardsService creates a new RewardsService with a scoped logger.
// publisher may be nil when event fanout is disabled.
func NewRewardsService(redemptionRepo repository.RedemptionRepository, publisher pubsub.Publisher, eventsTopic string, logger zerolog.Logger) RewardsService {
	return &rewardsService{
		redemptionRepo: redemptionRepo,
		publisher:      publisher,
		eventsTopic:    eventsTopic,
		logger:         logger.With().Str("service", "RewardsService").Logger(),
	}
}

func (s *rewardsService) Catalog() []model.Coupon {
	return catalog.Coupons()
}

func (s *rewardsService) Redeem(ctx context.Context, userID, couponID string) (*model.Redemption, error) {
	coupon, ok := catalog.CouponByID(couponID)
	if !ok {
		s.logger.Warn().Str("user_id", userID).Str("coupon_id", couponID).Msg("Redemption for unknown coupon")
		return nil, repository.ErrUnknownCoupon
	}

	now := time.Now().UTC()
	redemption, err := s.redemptionRepo.Redeem(ctx, userID, coupon, now)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Str("coupon_id", couponID).Msg("Redemption rejected")
		return nil, err
	}

	if s.publisher != nil {
		payload, merr := pubsub.Event{Type: "coupon.redeemed", UserID: userID, OccurredAt: now}.Marshal()
		if merr == nil {
			if _, perr := s.publisher.Publish(ctx, s.eventsTopic, payload); perr != nil {
				s.logger.Warn().Err(perr).Str("topic", s.eventsTopic).Msg("Failed to publish change event")
			}
		}
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("coupon_id", couponID).
		Int("cost", coupon.Cost).
		Msg("Coupon redeemed")
	return redemption, nil
}

func (s *rewardsService) History(ctx context.Context, userID string) ([]model.Redemption, error) {
	redemptions, err := s.redemptionRepo.ListByUser(ctx, userID, 50)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list redemptions")
		return nil, err
	}
	return redemptions, nil
}

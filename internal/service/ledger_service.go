package service

import (
	"context"
	"fmt"
	"time"

	"app/internal/model"
	"app/internal/pubsub"
	"app/internal/repository"
	"app/internal/scoring"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LedgerService converts completed practice sessions into durable stats
// updates and history records.
type LedgerService interface {
	// CompleteSession applies one completed session to the user's ledger.
	// Sessions shorter than the minimum threshold are a silent no-op and
	// return (nil, nil).
	CompleteSession(ctx context.Context, userID, presetID string, durationSeconds int) (*model.Session, error)
	ListSessions(ctx context.Context, userID string) ([]model.Session, error)
}

type ledgerService struct {
	ledgerRepo  repository.LedgerRepository
	sessionRepo repository.SessionRepository
	publisher   pubsub.Publisher
	eventsTopic string
	logger      zerolog.Logger
}

// NewLedgerService creates a new LedgerService with a scoped logger.
// publisher may be nil when event fanout is disabled.
func NewLedgerService(ledgerRepo repository.LedgerRepository, sessionRepo repository.SessionRepository, publisher pubsub.Publisher, eventsTopic string, logger zerolog.Logger) LedgerService {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		sessionRepo: sessionRepo,
		publisher:   publisher,
		eventsTopic: eventsTopic,
		logger:      logger.With().Str("service", "LedgerService").Logger(),
	}
}

func (s *ledgerService) CompleteSession(ctx context.Context, userID, presetID string, durationSeconds int) (*model.Session, error) {
	if durationSeconds < scoring.MinSessionSeconds {
		// Very short sessions are ignored, not rejected: no stats change,
		// no history record.
		s.logger.Debug().Str("user_id", userID).Int("duration_seconds", durationSeconds).Msg("Ignoring short session")
		return nil, nil
	}

	now := time.Now().UTC()
	stats, points, err := s.ledgerRepo.ApplySession(ctx, userID, durationSeconds, now)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to apply session to ledger")
		return nil, err
	}

	session := &model.Session{
		ID:              uuid.NewString(),
		UserID:          userID,
		PresetID:        presetID,
		DurationSeconds: durationSeconds,
		PointsAwarded:   points,
		CompletedAt:     now,
	}
	// History is appended after the stats commit. A lost history row is a
	// lesser inconsistency than a history row without a commit, so failures
	// here do not fail the operation.
	if err := s.sessionRepo.Insert(ctx, session); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Stats committed but session history append failed")
	}

	s.publishEvent(ctx, "session.completed", userID, now)

	s.logger.Info().
		Str("user_id", userID).
		Str("preset_id", presetID).
		Int("points_awarded", points).
		Int("current_streak", stats.CurrentStreak).
		Int("zen_score", stats.ZenScore).
		Msg("Session recorded")
	return session, nil
}

func (s *ledgerService) ListSessions(ctx context.Context, userID string) ([]model.Session, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID, 50)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list sessions")
		return nil, err
	}
	return sessions, nil
}

func (s *ledgerService) publishEvent(ctx context.Context, eventType, userID string, at time.Time) {
	if s.publisher == nil {
		return
	}
	payload, err := pubsub.Event{Type: eventType, UserID: userID, OccurredAt: at}.Marshal()
	if err != nil {
		s.logger.Warn().Err(err).Msg(fmt.Sprintf("Failed to marshal %s event", eventType))
		return
	}
	if _, err := s.publisher.Publish(ctx, s.eventsTopic, payload); err != nil {
		s.logger.Warn().Err(err).Str("topic", s.eventsTopic).Msg("Failed to publish change event")
	}
}

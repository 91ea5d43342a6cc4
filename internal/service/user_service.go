package service

import (
	"context"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// UserService bootstraps and reads user profiles.
type UserService interface {
	// Create bootstraps a profile with zeroed stats and a free subscription.
	Create(ctx context.Context, userID, email, displayName string) (*model.User, error)
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
}

type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService with a scoped logger.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "UserService").Logger(),
	}
}

func (s *userService) Create(ctx context.Context, userID, email, displayName string) (*model.User, error) {
	u := &model.User{UserID: userID, Email: email, DisplayName: displayName}
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create user")
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Msg("User created")
	return u, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch profile")
		return nil, err
	}
	return profile, nil
}

package service

import (
	"context"
	"errors"

	"app/internal/cache"
	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// LeaderboardService serves the ranked lifetime-points projection, fronted
// by a short-TTL Redis cache when one is configured.
type LeaderboardService interface {
	Top(ctx context.Context) ([]model.LeaderboardEntry, error)
}

type leaderboardService struct {
	repo   repository.LeaderboardRepository
	cache  *cache.LeaderboardCache
	size   int
	logger zerolog.Logger
}

// NewLeaderboardService creates a new LeaderboardService. cache may be nil
// when Redis is not configured.
func NewLeaderboardService(repo repository.LeaderboardRepository, c *cache.LeaderboardCache, size int, logger zerolog.Logger) LeaderboardService {
	return &leaderboardService{
		repo:   repo,
		cache:  c,
		size:   size,
		logger: logger.With().Str("service", "LeaderboardService").Logger(),
	}
}

func (s *leaderboardService) Top(ctx context.Context) ([]model.LeaderboardEntry, error) {
	if s.cache != nil {
		entries, err := s.cache.Get(ctx)
		if err == nil {
			return entries, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn().Err(err).Msg("Leaderboard cache read failed, falling back to database")
		}
	}

	entries, err := s.repo.Top(ctx, s.size)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to query leaderboard")
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, entries); err != nil {
			s.logger.Warn().Err(err).Msg("Leaderboard cache write failed")
		}
	}
	return entries, nil
}

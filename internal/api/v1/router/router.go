package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/api/v1/handler"
	"app/internal/cache"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/pubsub"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *pgxpool.Pool, error) {
	ctx := context.Background()

	// 1. Open DB connection pool
	dsn := cfg.DBConnectionString
	// In a development environment, ensure that SSL is disabled for local
	// testing. In production the connection string carries its own settings.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dsn += separator + "sslmode=disable"
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open DB connection pool")
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to ping DB")
		pool.Close()
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	// 2. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 3. Initialize Pub/Sub publisher for change-event fanout (optional)
	var publisher pubsub.Publisher
	if cfg.GCPProjectID != "" {
		p, err := pubsub.NewPublisher(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create Pub/Sub publisher")
			pool.Close()
			return nil, nil, err
		}
		publisher = p
	} else {
		logger.Warn().Msg("GCP_PROJECT_ID not set, change events disabled")
	}

	// 4. Initialize leaderboard cache (optional)
	var leaderboardCache *cache.LeaderboardCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ttl := time.Duration(cfg.LeaderboardCacheTTLSec) * time.Second
		leaderboardCache = cache.NewLeaderboardCache(rdb, ttl)
	} else {
		logger.Warn().Msg("REDIS_ADDR not set, leaderboard cache disabled")
	}

	// 5. Initialize repositories & services & handlers
	userRepo := repository.NewUserRepo(pool)
	ledgerRepo := repository.NewLedgerRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)
	redemptionRepo := repository.NewRedemptionRepo(pool)
	subscriptionRepo := repository.NewSubscriptionRepo(pool)
	paymentRepo := repository.NewPaymentRepo(pool)
	leaderboardRepo := repository.NewLeaderboardRepo(pool)

	userSvc := service.NewUserService(userRepo, logger)
	ledgerSvc := service.NewLedgerService(ledgerRepo, sessionRepo, publisher, cfg.EventsTopic, logger)
	rewardsSvc := service.NewRewardsService(redemptionRepo, publisher, cfg.EventsTopic, logger)
	subSvc := service.NewSubscriptionService(subscriptionRepo, userRepo, paymentRepo, publisher, cfg.EventsTopic, logger)
	leaderboardSvc := service.NewLeaderboardService(leaderboardRepo, leaderboardCache, cfg.LeaderboardSize, logger)

	userHandler := handler.NewUserHandler(userSvc, validate, logger)
	sessionHandler := handler.NewSessionHandler(ledgerSvc, validate, logger)
	rewardsHandler := handler.NewRewardsHandler(rewardsSvc, validate, logger)
	subscriptionHandler := handler.NewSubscriptionHandler(subSvc, validate, logger)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc, logger)

	// 6. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, logger)

	// 7. Create ServeMux router
	apiV1Mux := http.NewServeMux()
	userHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	sessionHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	rewardsHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	subscriptionHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	leaderboardHandler.RegisterRoutes(apiV1Mux)

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// 8. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux)), pool, nil
}

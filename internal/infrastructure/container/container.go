package container

import (
	"fmt"

	"github.com/investmatch/backend/internal/config"
	"github.com/investmatch/backend/internal/delivery/http"
	"github.com/investmatch/backend/internal/delivery/http/handler"
	"github.com/investmatch/backend/internal/delivery/http/middleware"
	"github.com/investmatch/backend/internal/infrastructure/database"
	"github.com/investmatch/backend/internal/infrastructure/gemini"
	"github.com/investmatch/backend/internal/infrastructure/server"
	"github.com/investmatch/backend/internal/infrastructure/wallet"
	"github.com/investmatch/backend/internal/repository/postgres"
	"github.com/investmatch/backend/internal/repository/redisrepo"
	"github.com/investmatch/backend/internal/usecase/feed"
	"github.com/investmatch/backend/internal/usecase/quota"
	"github.com/investmatch/backend/internal/usecase/swipe"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient
	Logger zerolog.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger zerolog.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis (quota state lives here)
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize Gemini client; match insights are optional
	geminiClient, err := gemini.NewGeminiClient(cfg.GeminiAPIKey)
	if err != nil {
		logger.Warn().Err(err).Msg("gemini client unavailable, match insights disabled")
		geminiClient = nil
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	quotaRepo := redisrepo.NewQuotaRepository(redisClient)

	// External wallet
	walletGateway := wallet.NewClient(&cfg.Wallet)

	// Initialize use cases
	quotaUseCase := quota.NewUseCase(
		quotaRepo,
		&cfg.Matching,
		logger,
	)

	feedUseCase := feed.NewFeedUseCase(
		profileRepo,
		swipeRepo,
		cfg.Matching.ScoreWeights(),
		logger,
	)

	swipeUseCase := swipe.NewSwipeUseCase(
		swipeRepo,
		matchRepo,
		profileRepo,
		quotaUseCase,
		walletGateway,
		geminiClient,
		cfg.Matching.ScoreWeights(),
		logger,
	)

	// Initialize handlers
	feedHandler := handler.NewFeedHandler(feedUseCase)
	swipeHandler := handler.NewSwipeHandler(swipeUseCase, quotaUseCase)
	matchHandler := handler.NewMatchHandler(swipeUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)

	// Initialize router
	router := http.NewRouter(
		feedHandler,
		swipeHandler,
		matchHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, logger)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Gemini: geminiClient,
		Logger: logger,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Error().Err(err).Msg("error closing redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}

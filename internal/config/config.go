package config

import (
	"fmt"
	"time"

	"github.com/investmatch/backend/internal/domain"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Wallet       WalletConfig
	Matching     MatchingConfig
	Logging      LoggingConfig
	GeminiAPIKey string
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiryMin int
}

// WalletConfig points at the external points-wallet service.
type WalletConfig struct {
	BaseURL string
	Timeout time.Duration
}

// MatchingConfig holds the swipe economy policy. The free limit, point
// prices and undo window are product knobs; the scoring weights must stay
// non-negative (see domain.ScoreWeights).
type MatchingConfig struct {
	DailyFreeLimit int
	DailyHardLimit int // 0 means unlimited paid swipes
	PointsPerSwipe int
	PointsPerUndo  int
	UndoWindow     time.Duration

	CategoryOverlapWeight float64
	VerifiedBonusWeight   float64
	ActivityWeight        float64
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	viper.SetDefault("DAILY_FREE_LIMIT", 10)
	viper.SetDefault("DAILY_HARD_LIMIT", 100)
	viper.SetDefault("POINTS_PER_SWIPE", 5)
	viper.SetDefault("POINTS_PER_UNDO", 10)
	viper.SetDefault("UNDO_WINDOW_SEC", 300)
	viper.SetDefault("SCORE_CATEGORY_WEIGHT", 10.0)
	viper.SetDefault("SCORE_VERIFIED_BONUS", 15.0)
	viper.SetDefault("SCORE_ACTIVITY_WEIGHT", 25.0)
	viper.SetDefault("WALLET_TIMEOUT_SEC", 5)

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:    viper.GetString("JWT_ACCESS_SECRET"),
			AccessExpiryMin: viper.GetInt("JWT_ACCESS_EXPIRY_MIN"),
		},
		Wallet: WalletConfig{
			BaseURL: viper.GetString("WALLET_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("WALLET_TIMEOUT_SEC")) * time.Second,
		},
		Matching: MatchingConfig{
			DailyFreeLimit: viper.GetInt("DAILY_FREE_LIMIT"),
			DailyHardLimit: viper.GetInt("DAILY_HARD_LIMIT"),
			PointsPerSwipe: viper.GetInt("POINTS_PER_SWIPE"),
			PointsPerUndo:  viper.GetInt("POINTS_PER_UNDO"),
			UndoWindow:     time.Duration(viper.GetInt("UNDO_WINDOW_SEC")) * time.Second,

			CategoryOverlapWeight: viper.GetFloat64("SCORE_CATEGORY_WEIGHT"),
			VerifiedBonusWeight:   viper.GetFloat64("SCORE_VERIFIED_BONUS"),
			ActivityWeight:        viper.GetFloat64("SCORE_ACTIVITY_WEIGHT"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.Wallet.BaseURL == "" {
		return fmt.Errorf("wallet base URL is required")
	}
	if err := c.Matching.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate rejects policy values the engine cannot run with. A missing or
// negative quota configuration is a programming error, not a runtime state.
func (c *MatchingConfig) Validate() error {
	if c.DailyFreeLimit <= 0 {
		return fmt.Errorf("daily free limit must be positive")
	}
	if c.DailyHardLimit > 0 && c.DailyHardLimit < c.DailyFreeLimit {
		return fmt.Errorf("daily hard limit cannot be below the free limit")
	}
	if c.PointsPerSwipe < 0 || c.PointsPerUndo < 0 {
		return fmt.Errorf("point prices cannot be negative")
	}
	if c.UndoWindow <= 0 {
		return fmt.Errorf("undo window must be positive")
	}
	if c.CategoryOverlapWeight < 0 || c.VerifiedBonusWeight < 0 || c.ActivityWeight < 0 {
		return fmt.Errorf("score weights cannot be negative")
	}
	return nil
}

// ScoreWeights exposes the scoring knobs in the shape the domain expects.
func (c *MatchingConfig) ScoreWeights() domain.ScoreWeights {
	return domain.ScoreWeights{
		CategoryOverlap: c.CategoryOverlapWeight,
		VerifiedBonus:   c.VerifiedBonusWeight,
		Activity:        c.ActivityWeight,
	}
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

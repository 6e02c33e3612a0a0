package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ligadatos/liga-stats/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	DBURL          string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	PlayerAppearanceWeight float64
	PlayerGoalWeight       float64
	ClubAppearanceWeight   float64
	ClubGoalWeight         float64
	StreakLength           int
	TriggerLockTTL         time.Duration
	BatchMaxWorkers        int

	RatingsEnabled               bool
	RatingsBaseURL               string
	RatingsAPIKey                string
	RatingsTimeout               time.Duration
	RatingsMaxRetries            int
	RatingsCircuitEnabled        bool
	RatingsCircuitFailureCount   int
	RatingsCircuitOpenTimeout    time.Duration
	RatingsCircuitHalfOpenMaxReq int

	LogLevel logging.Level
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	playerAppearanceWeight, err := getEnvAsFloat("POINTS_PLAYER_APPEARANCE_WEIGHT", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse POINTS_PLAYER_APPEARANCE_WEIGHT: %w", err)
	}
	playerGoalWeight, err := getEnvAsFloat("POINTS_PLAYER_GOAL_WEIGHT", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse POINTS_PLAYER_GOAL_WEIGHT: %w", err)
	}
	clubAppearanceWeight, err := getEnvAsFloat("POINTS_CLUB_APPEARANCE_WEIGHT", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse POINTS_CLUB_APPEARANCE_WEIGHT: %w", err)
	}
	clubGoalWeight, err := getEnvAsFloat("POINTS_CLUB_GOAL_WEIGHT", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse POINTS_CLUB_GOAL_WEIGHT: %w", err)
	}
	if playerAppearanceWeight < 0 || playerGoalWeight < 0 || clubAppearanceWeight < 0 || clubGoalWeight < 0 {
		return Config{}, fmt.Errorf("points weights must be >= 0")
	}

	streakLength, err := getEnvAsInt("STANDINGS_STREAK_LENGTH", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse STANDINGS_STREAK_LENGTH: %w", err)
	}
	if streakLength < 1 {
		return Config{}, fmt.Errorf("STANDINGS_STREAK_LENGTH must be >= 1")
	}

	triggerLockTTL, err := time.ParseDuration(getEnv("TRIGGER_LOCK_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse TRIGGER_LOCK_TTL: %w", err)
	}
	if triggerLockTTL <= 0 {
		return Config{}, fmt.Errorf("TRIGGER_LOCK_TTL must be > 0")
	}

	batchMaxWorkers, err := getEnvAsInt("BATCH_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse BATCH_MAX_WORKERS: %w", err)
	}
	if batchMaxWorkers < 1 {
		return Config{}, fmt.Errorf("BATCH_MAX_WORKERS must be >= 1")
	}

	ratingsEnabled, err := strconv.ParseBool(getEnv("RATINGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RATINGS_ENABLED: %w", err)
	}
	ratingsTimeout, err := time.ParseDuration(getEnv("RATINGS_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RATINGS_TIMEOUT: %w", err)
	}
	if ratingsTimeout <= 0 {
		return Config{}, fmt.Errorf("RATINGS_TIMEOUT must be > 0")
	}
	ratingsMaxRetries, err := getEnvAsInt("RATINGS_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse RATINGS_MAX_RETRIES: %w", err)
	}
	if ratingsMaxRetries < 0 {
		return Config{}, fmt.Errorf("RATINGS_MAX_RETRIES must be >= 0")
	}
	ratingsCircuitEnabled, err := strconv.ParseBool(getEnv("RATINGS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RATINGS_CIRCUIT_ENABLED: %w", err)
	}
	ratingsCircuitFailureCount, err := getEnvAsInt("RATINGS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse RATINGS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if ratingsCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("RATINGS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	ratingsCircuitOpenTimeout, err := time.ParseDuration(getEnv("RATINGS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RATINGS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if ratingsCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("RATINGS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	ratingsCircuitHalfOpenMaxReq, err := getEnvAsInt("RATINGS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse RATINGS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if ratingsCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("RATINGS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	ratingsBaseURL := strings.TrimSpace(getEnv("RATINGS_BASE_URL", ""))
	ratingsAPIKey := strings.TrimSpace(getEnv("RATINGS_API_KEY", ""))
	if ratingsEnabled {
		if ratingsBaseURL == "" {
			return Config{}, fmt.Errorf("RATINGS_BASE_URL is required when RATINGS_ENABLED=true")
		}
		if ratingsAPIKey == "" {
			return Config{}, fmt.Errorf("RATINGS_API_KEY is required when RATINGS_ENABLED=true")
		}
	}

	return Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "liga-stats-api"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:          getEnv("DB_URL", ""),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,

		PlayerAppearanceWeight: playerAppearanceWeight,
		PlayerGoalWeight:       playerGoalWeight,
		ClubAppearanceWeight:   clubAppearanceWeight,
		ClubGoalWeight:         clubGoalWeight,
		StreakLength:           streakLength,
		TriggerLockTTL:         triggerLockTTL,
		BatchMaxWorkers:        batchMaxWorkers,

		RatingsEnabled:               ratingsEnabled,
		RatingsBaseURL:               ratingsBaseURL,
		RatingsAPIKey:                ratingsAPIKey,
		RatingsTimeout:               ratingsTimeout,
		RatingsMaxRetries:            ratingsMaxRetries,
		RatingsCircuitEnabled:        ratingsCircuitEnabled,
		RatingsCircuitFailureCount:   ratingsCircuitFailureCount,
		RatingsCircuitOpenTimeout:    ratingsCircuitOpenTimeout,
		RatingsCircuitHalfOpenMaxReq: ratingsCircuitHalfOpenMaxReq,

		LogLevel: parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

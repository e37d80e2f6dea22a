package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// AppConfig holds the service configuration read from the environment
type AppConfig struct {
	Port string
	Env  string

	// DatabaseURL selects the postgres audit repository; empty runs with the in-memory one
	DatabaseURL string

	TrainingSamples int
	CropSeriesDays  int
	ForestTrees     int
	ModelSeed       int64

	// ModelRefreshInterval > 0 keeps one trained model and retrains it on this interval.
	// 0 retrains on every prediction request.
	ModelRefreshInterval time.Duration

	MaxUploadBytes int
	// MaxImagePixels caps the declared width*height of an uploaded crop image
	MaxImagePixels int
}

// Load reads configuration from environment with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("GO_ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
	}

	var err error
	if cfg.TrainingSamples, err = getEnvInt("TRAINING_SAMPLES", 100); err != nil {
		return nil, err
	}
	if cfg.CropSeriesDays, err = getEnvInt("CROP_SERIES_DAYS", 30); err != nil {
		return nil, err
	}
	if cfg.ForestTrees, err = getEnvInt("FOREST_TREES", 100); err != nil {
		return nil, err
	}
	seed, err := getEnvInt("MODEL_SEED", 42)
	if err != nil {
		return nil, err
	}
	cfg.ModelSeed = int64(seed)
	if cfg.MaxUploadBytes, err = getEnvInt("MAX_UPLOAD_BYTES", 10<<20); err != nil {
		return nil, err
	}
	if cfg.MaxImagePixels, err = getEnvInt("MAX_IMAGE_PIXELS", 50_000_000); err != nil {
		return nil, err
	}

	interval, err := time.ParseDuration(getEnv("MODEL_REFRESH_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MODEL_REFRESH_INTERVAL: %w", err)
	}
	if interval < 0 {
		return nil, fmt.Errorf("invalid MODEL_REFRESH_INTERVAL: must not be negative")
	}
	cfg.ModelRefreshInterval = interval

	if cfg.TrainingSamples < 1 {
		return nil, fmt.Errorf("invalid TRAINING_SAMPLES: must be at least 1")
	}
	if cfg.CropSeriesDays < 1 {
		return nil, fmt.Errorf("invalid CROP_SERIES_DAYS: must be at least 1")
	}
	if cfg.MaxImagePixels < 1 {
		return nil, fmt.Errorf("invalid MAX_IMAGE_PIXELS: must be at least 1")
	}

	return cfg, nil
}

// IsDevelopment reports whether the service runs in development mode
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// NewLogger builds a zap logger matching the environment
func (c *AppConfig) NewLogger() (*zap.Logger, error) {
	if c.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

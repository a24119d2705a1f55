package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fleetdelivery/internal/core/application/usecases/commands"
)

// LoadConfig reads .env files (if present) into the process environment and
// builds a Config. Variables already set in the environment win.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	var errList []error
	config := Config{
		HTTPPort:      envOr("HTTP_PORT", "8080"),
		DBHost:        envOr("DB_HOST", "localhost"),
		DBPort:        envOr("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSslMode:     envOr("DB_SSLMODE", "disable"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0, &errList),
		EstimateTTL:   envDuration("ESTIMATE_CACHE_TTL", 10*time.Minute, &errList),
		OffersFile:    os.Getenv("OFFERS_FILE"),
		BatchSchedule: os.Getenv("BATCH_SCHEDULE"),
		RateLimit:     envFloat("RATE_LIMIT", 20, &errList),
		RateBurst:     envInt("RATE_BURST", 40, &errList),
		BodyLimit:     envOr("BODY_LIMIT", "256K"),
		MaxParcels:    envInt("MAX_PARCELS", commands.DefaultMaxParcels, &errList),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		ServiceName:   envOr("OTEL_SERVICE_NAME", "fleetdelivery"),
	}

	return config, errors.Join(errList...)
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to Info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int, errList *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errList = append(*errList, errors.New(key+": "+err.Error()))
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64, errList *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errList = append(*errList, errors.New(key+": "+err.Error()))
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration, errList *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errList = append(*errList, errors.New(key+": "+err.Error()))
		return fallback
	}
	return d
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs from the environment.
type Config struct {
	DatabaseURL    string
	Port           string
	RoomServiceURL string

	MaxDaysInRow   int
	MaxDaysAdvance int
	LockTimeout    time.Duration

	DefaultLanguage string
	StatsCronSpec   string
}

// Load reads .env (when present) and the process environment. Only
// DATABASE_URL and ROOM_SERVICE_URL are mandatory; the rest default to
// sensible values.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Port:            getEnv("PORT", "8080"),
		RoomServiceURL:  os.Getenv("ROOM_SERVICE_URL"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		StatsCronSpec:   getEnv("STATS_CRON_SPEC", "@every 1m"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	if cfg.RoomServiceURL == "" {
		return nil, fmt.Errorf("ROOM_SERVICE_URL not set")
	}

	var err error
	if cfg.MaxDaysInRow, err = getEnvInt("BOOKING_MAX_DAYS_IN_ROW", 3); err != nil {
		return nil, err
	}
	if cfg.MaxDaysAdvance, err = getEnvInt("BOOKING_MAX_DAYS_IN_ADVANCE", 30); err != nil {
		return nil, err
	}
	if cfg.LockTimeout, err = getEnvDuration("BOOKING_LOCK_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(name string, fallback int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

func getEnvDuration(name string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

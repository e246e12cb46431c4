package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process configuration, sourced from the environment.
type Config struct {
	Env        string // "development" or "production"
	ListenAddr string

	// Domain embedded into challenge messages.
	AuthDomain string

	// RedisURL, when set, backs sessions and auth events with Redis.
	// Empty means in-process sessions and no event publishing.
	RedisURL string

	SweepInterval time.Duration

	// ChallengeMaxAge rejects logins whose challenge is older than this.
	// Zero disables the check.
	ChallengeMaxAge time.Duration
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Env:        getEnv("ENV", "development"),
		ListenAddr: getEnv("LISTEN_ADDR", ":9000"),
		AuthDomain: getEnv("AUTH_DOMAIN", "crowdstaking.org"),
		RedisURL:   os.Getenv("REDIS_URL"),
	}

	var err error
	if cfg.SweepInterval, err = getDuration("SWEEP_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.ChallengeMaxAge, err = getDuration("CHALLENGE_MAX_AGE", 0); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Production reports whether the process runs with production settings.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// Package config reads process configuration from the environment once at
// startup. Values come from the environment (or a .env file loaded by
// godotenv in main) with sane defaults for local development.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full configuration surface for the server binary.
type Config struct {
	Port        string
	AdminSecret string
	MaxPlayers  int

	// SessionResetTimeout is how old a session may grow before the presence
	// sweep replaces it with a fresh one.
	SessionResetTimeout time.Duration

	RedisAddr   string
	RedisDB     int
	SnapshotKey string

	// HistoryQueue is the Redis list the historian drains.
	HistoryQueue string
}

// Load reads the environment and returns a populated Config.
func Load() Config {
	return Config{
		Port:                getEnv("PORT", "8080"),
		AdminSecret:         getEnv("ADMIN_SECRET", "changeme"),
		MaxPlayers:          getEnvInt("MAX_PLAYERS", 8),
		SessionResetTimeout: getEnvDuration("SESSION_RESET_TIMEOUT", 6*time.Hour),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		SnapshotKey:         getEnv("SNAPSHOT_KEY", "dareloop:session"),
		HistoryQueue:        getEnv("HISTORY_QUEUE_NAME", "dareloop_history"),
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt parses an environment variable as an integer, else a default.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// getEnvDuration parses an environment variable as a duration, else a default.
func getEnvDuration(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

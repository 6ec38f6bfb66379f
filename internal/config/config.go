// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads a .env file if one is present. Environment variables already
// set take precedence.
func Load() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on environment")
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Addr is the listen address for the websocket server.
func Addr() string {
	return getenv("TAROT_ADDR", ":8080")
}

// PostgresDSN is the connection string for game result storage. Empty
// disables persistence.
func PostgresDSN() string {
	return os.Getenv("TAROT_POSTGRES_DSN")
}

// RedisAddr is the address of the history stream. Empty disables the
// stream.
func RedisAddr() string {
	return os.Getenv("TAROT_REDIS_ADDR")
}

// RedisPassword is the optional Redis auth password.
func RedisPassword() string {
	return os.Getenv("TAROT_REDIS_PASSWORD")
}

// JWTSecret signs session tokens.
func JWTSecret() string {
	return getenv("TAROT_JWT_SECRET", "dev-secret-change-me")
}

// BotDelay is the pause between consecutive bot moves.
func BotDelay() time.Duration {
	ms, err := strconv.Atoi(getenv("TAROT_BOT_DELAY_MS", "750"))
	if err != nil || ms < 0 {
		return 750 * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreFile   = "file"
	SessionStoreRedis  = "redis"

	AuthModeOpen = "open"
	AuthModeDemo = "demo"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Catalog database (optional, in-memory catalog when empty)
	DatabaseURL string

	// Redis (optional)
	RedisURL string

	// Auth
	JWTSecret     string
	CookieSecret  string
	AuthMode      string
	AuthRateLimit int

	// Session storage
	SessionStore string
	SessionFile  string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	jwtSecret := mustGetEnv("JWT_SECRET")

	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		Env:           getEnvOrDefault("ENV", "development"),
		DatabaseURL:   getEnvOrDefault("DATABASE_URL", ""),
		RedisURL:      getEnvOrDefault("REDIS_URL", ""),
		JWTSecret:     jwtSecret,
		CookieSecret:  getEnvOrDefault("COOKIE_SECRET", jwtSecret),
		AuthMode:      strings.ToLower(getEnvOrDefault("AUTH_MODE", AuthModeOpen)),
		AuthRateLimit: getEnvAsIntOrDefault("AUTH_RATE_LIMIT", 10),
		SessionStore:  strings.ToLower(getEnvOrDefault("SESSION_STORE", SessionStoreMemory)),
		SessionFile:   getEnvOrDefault("SESSION_FILE", "./data/sessions.json"),
		FrontendURL:   getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}

	return cfg
}

// Validate checks the combinations env parsing alone cannot catch.
func (c *Config) Validate() error {
	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreFile:
	case SessionStoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("SESSION_STORE=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
	}

	if c.AuthMode != AuthModeOpen && c.AuthMode != AuthModeDemo {
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}

	return nil
}

// IsProduction reports whether cookies should be marked Secure.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBDriver    string // sqlite|postgres
	SQLitePath  string
	PostgresURI string

	RedisAddr string
	CacheTTL  time.Duration

	LogLevel  string
	LogFormat string

	ApplyRatePerMin int
	CORSOrigins     []string
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:            getenv("PORT", "8080"),
		DBDriver:        strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		SQLitePath:      getenv("SQLITE_PATH", "hirea.sqlite"),
		PostgresURI:     os.Getenv("POSTGRES_URI"),
		RedisAddr:       firstEnv("REDIS_ADDR", "REDIS_URI", "REDIS_URL"),
		CacheTTL:        5 * time.Minute,
		LogLevel:        os.Getenv("LOG_LEVEL"),
		LogFormat:       os.Getenv("LOG_FORMAT"),
		ApplyRatePerMin: 30,
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.CacheTTL = d
		}
	}
	if v := os.Getenv("APPLY_RATE_PER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ApplyRatePerMin = n
		}
	}
	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	return cfg
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

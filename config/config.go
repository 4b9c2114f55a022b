package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Payment  PaymentConfig
	Boost    BoostConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PaymentConfig struct {
	WebhookSecret string
	PaymentExpiry time.Duration
}

// BoostConfig tunes the promotion engine defaults shared by all verticals.
type BoostConfig struct {
	DefaultDurationDays int
	CooldownHours       int
	FeaturedCacheTTL    time.Duration
	CronSecret          string
}

func Load() *Config {
	// Missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getenv("PORT", "8080"),
			Env:          getenv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getenv("DATABASE_DSN", "impulso:impulso@tcp(localhost:3306)/impulso?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    getint("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getint("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  getenv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getenv("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  getdur("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getdur("JWT_REFRESH_EXPIRY", 168*time.Hour),
			Issuer:        "impulso",
		},
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getint("REDIS_DB", 0),
		},
		Payment: PaymentConfig{
			WebhookSecret: getenv("PAYMENT_WEBHOOK_SECRET", ""),
			PaymentExpiry: getdur("PAYMENT_EXPIRY", 30*time.Minute),
		},
		Boost: BoostConfig{
			DefaultDurationDays: getint("BOOST_DEFAULT_DURATION_DAYS", 15),
			CooldownHours:       getint("BOOST_COOLDOWN_HOURS", 0),
			FeaturedCacheTTL:    getdur("FEATURED_CACHE_TTL", 30*time.Second),
			CronSecret:          getenv("CRON_SECRET", ""),
		},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

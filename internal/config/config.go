package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	Env      string

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string

	KafkaBrokers []string

	AccessTokenSecret  string
	RefreshTokenSecret string
	CookieSecret       string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Load reads the configuration from the environment, after loading a .env
// file when one is present.
func Load() *Config {
	// A missing .env file is fine, env vars take over.
	_ = godotenv.Load()

	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Env:      getEnv("APP_ENV", "development"),

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB_NAME", "shopdb"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),

		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET_KEY", "dev-access-secret"),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET_KEY", "dev-refresh-secret"),
		CookieSecret:       getEnv("COOKIE_PARSER_SECRET_KEY", "dev-cookie-secret"),

		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

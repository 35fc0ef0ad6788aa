package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	DBURL string

	// media host the event image uploads are forwarded to
	MediaEndpoint string
	MediaAPIKey   string
	MediaBucket   string

	// empty RedisAddr means the in-process cache
	RedisAddr string
	CacheTTL  time.Duration

	TracingEnabled bool
	OtelEndpoint   string
}

func Load() Config {
	// best effort; real deployments set the environment directly
	_ = godotenv.Load()

	return Config{
		Env:   getEnv("APP_ENV", "dev"),
		Port:  getEnvInt("PORT", 8080),
		DBURL: buildDBURL(),

		MediaEndpoint: getEnv("MEDIA_ENDPOINT", "http://127.0.0.1:9200"),
		MediaAPIKey:   getEnv("MEDIA_API_KEY", ""),
		MediaBucket:   getEnv("MEDIA_BUCKET", "events"),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		CacheTTL:  getEnvDuration("CACHE_TTL", 30*time.Second),

		TracingEnabled: getEnv("OTEL_ENABLED", "") == "true",
		OtelEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "127.0.0.1:4317"),
	}
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "eventbooking")
	pass := getEnv("DB_PASSWORD", "eventbooking")
	name := getEnv("DB_NAME", "eventbooking")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return d
	}
	return fallback
}

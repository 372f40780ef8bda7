package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	DatabaseURL          string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	JWTSecret string
	LogLevel  string

	// Publish backends
	BufferAPIKey   string
	BufferBaseURL  string
	WebhookURL     string
	PublishTimeout time.Duration

	// Worker
	WorkerSchedule   string // robfig/cron spec, e.g. "@every 1m"
	WorkerBatchLimit int
	ClaimTimeout     time.Duration
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:          mustGetenv("DATABASE_URL"),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",

		LogLevel: getenv("LOG_LEVEL", "info"),

		BufferAPIKey:   getenv("BUFFER_API_KEY", ""),
		BufferBaseURL:  getenv("BUFFER_BASE_URL", "https://api.buffer.com"),
		WebhookURL:     getenv("WEBHOOK_URL", ""),
		PublishTimeout: getdur("PUBLISH_TIMEOUT", 15*time.Second),

		WorkerSchedule:   getenv("WORKER_SCHEDULE", "@every 1m"),
		WorkerBatchLimit: getint("WORKER_BATCH_LIMIT", 10),
		ClaimTimeout:     getdur("CLAIM_TIMEOUT", 5*time.Minute),
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.JWTSecret = mustGetenv("JWT_SECRET")
	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}

func getint(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getdur(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

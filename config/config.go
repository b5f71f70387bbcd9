package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	AppURL string
	Port   string

	// Database
	DBDriver    string
	DatabaseURL string

	// Auth
	JWTSecret     string
	TokenDuration time.Duration
	TokenIssuer   string
	SecureCookies bool

	// Image provider: "mock" or "gemini"
	Provider           string
	ProviderTimeout    time.Duration
	GeminiAPIKey       string
	GeminiModel        string
	MockImageBaseURL   string
	MockFailureTrigger string
	MockDelay          time.Duration
	MaxImageWidth      int
	MaxImageHeight     int

	// Storage for generated images: "gcs" or "s3"
	StorageDriver string
	GCSProjectID  string
	GCSBucketName string
	S3Region      string
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string
	S3Endpoint    string

	SentryDSN string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppEnv: envString("APP_ENV", "development"),
		AppURL: envString("APP_URL", "http://localhost:3000"),
		Port:   envString("PORT", "3000"),

		DBDriver:    envString("DB_DRIVER", "postgres"),
		DatabaseURL: envRequired("DATABASE_URL"),

		JWTSecret:     envRequired("JWT_SECRET"),
		TokenDuration: envDuration("TOKEN_DURATION", 24*time.Hour),
		TokenIssuer:   envString("TOKEN_ISSUER", "snap-studio"),
		SecureCookies: envBool("SECURE_COOKIES", false),

		Provider:           envString("PROVIDER", "mock"),
		ProviderTimeout:    envDuration("PROVIDER_TIMEOUT", 60*time.Second),
		GeminiAPIKey:       envString("GEMINI_API_KEY", ""),
		GeminiModel:        envString("GEMINI_MODEL", "gemini-2.5-flash-image-preview"),
		MockImageBaseURL:   envString("MOCK_IMAGE_BASE_URL", "https://placehold.co/generated"),
		MockFailureTrigger: envString("MOCK_FAILURE_TRIGGER", "fail"),
		MockDelay:          envDuration("MOCK_DELAY", 0),
		MaxImageWidth:      envInt("MAX_IMAGE_WIDTH", 4000),
		MaxImageHeight:     envInt("MAX_IMAGE_HEIGHT", 4000),

		StorageDriver: envString("STORAGE_DRIVER", "gcs"),
		GCSProjectID:  envString("GSC_PROJECT_ID", ""),
		GCSBucketName: envString("GSC_BUCKET_NAME", ""),
		S3Region:      envString("S3_REGION", "us-east-1"),
		S3Bucket:      envString("S3_BUCKET", ""),
		S3AccessKey:   envString("S3_ACCESS_KEY", ""),
		S3SecretKey:   envString("S3_SECRET_KEY", ""),
		S3Endpoint:    envString("S3_ENDPOINT", ""),

		SentryDSN: envString("SENTRY_DSN", ""),
	}

	if cfg.Provider == "gemini" && cfg.GeminiAPIKey == "" {
		slog.Error("gemini provider requires GEMINI_API_KEY")
		os.Exit(1)
	}

	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

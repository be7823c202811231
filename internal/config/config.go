package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	//App
	Env string // dev / staging / prod
	//HTTP
	HTTPAddr string
	//Auth / Security
	JWTSecret string

	// Verification tokens: the signed token carries its own nominal TTL, the
	// stored expiry on the account row is the short authoritative window.
	VerifyTokenTTL time.Duration
	VerifyWindow   time.Duration

	// Infrastructure
	DBAddr    string
	RabbitURL string // optional: empty means log-only publisher

	// Object storage
	S3Bucket    string
	S3Region    string
	S3Endpoint  string // optional: custom endpoint for MinIO/localstack
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string // optional: base URL for stored object links

	// Notification dispatch
	NotifyQueueSize int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	// .env is a dev convenience; in real deployments the environment is set
	// by the orchestrator and the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	cfg.S3Bucket = os.Getenv("S3_BUCKET")
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("missing required env var: S3_BUCKET")
	}

	// optional with defaults
	ttl, err := getDuration("VERIFY_TOKEN_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.VerifyTokenTTL = ttl

	win, err := getDuration("VERIFY_WINDOW", 2*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.VerifyWindow = win

	cfg.RabbitURL = os.Getenv("RABBIT_URL")

	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3AccessKey = os.Getenv("S3_ACCESS_KEY")
	cfg.S3SecretKey = os.Getenv("S3_SECRET_KEY")
	cfg.S3PublicURL = os.Getenv("S3_PUBLIC_URL")

	qs, err := getInt("NOTIFY_QUEUE_SIZE", 64)
	if err != nil {
		return nil, err
	}
	cfg.NotifyQueueSize = qs

	//Timeout values are optional and have a default value if not
	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid value for %s: %q", key, v)
	}
	return n, nil
}

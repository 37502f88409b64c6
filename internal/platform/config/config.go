package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures all server configuration so main stays lean. Every field
// has a development default; production overrides via environment variables.
type Config struct {
	Addr string

	// Postgres DSN for the pgx stdlib driver.
	DatabaseURL string

	Redis RedisConfig
	Kafka KafkaConfig

	// JWTSigningKey verifies resident bearer tokens issued by the hosted
	// auth service and signs file-download URL tokens.
	JWTSigningKey string

	// AdminToken gates the admin review and transparency surfaces. When
	// AdminTokenHash is set it takes precedence and the plaintext token
	// never appears in config.
	AdminToken     string
	AdminTokenHash string

	// NotifyBaseURL is the base of the outbound notification API; one
	// endpoint per event kind hangs off it. Empty disables notifications.
	NotifyBaseURL string
	NotifyTimeout time.Duration

	// StorageDir is the root of the on-disk blob store.
	StorageDir string
	// SignedURLTTL bounds how long file-download tokens stay valid.
	SignedURLTTL time.Duration
}

// RedisConfig configures the change-feed pub/sub client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit outbox publisher. Empty brokers disable
// kafka publishing (audit events stay in the outbox table).
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables with development defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:           envOr("BALANGAY_ADDR", ":8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSigningKey:  envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		AdminToken:     envOr("ADMIN_TOKEN", "dev-admin-token"),
		AdminTokenHash: os.Getenv("ADMIN_TOKEN_HASH"),
		NotifyBaseURL:  os.Getenv("NOTIFY_BASE_URL"),
		NotifyTimeout:  envDurationOr("NOTIFY_TIMEOUT", 10*time.Second),
		StorageDir:     envOr("STORAGE_DIR", "./data/blobs"),
		SignedURLTTL:   envDurationOr("SIGNED_URL_TTL", time.Hour),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDurationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Topic: envOr("KAFKA_AUDIT_TOPIC", "balangay.audit"),
		},
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = splitCSV(brokers)
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

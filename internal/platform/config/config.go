package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// TimezoneCacheTTL bounds how long a tenant's timezone setting may be
// served from cache after an admin changes it.
var TimezoneCacheTTL = 5 * time.Minute

// Redis captures connection settings for the tenant timezone cache.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka captures the audit sink settings. Empty brokers disable the sink.
type Kafka struct {
	Brokers    []string
	AuditTopic string
}

// Server captures process-level configuration.
type Server struct {
	Addr            string
	AdminToken      string
	SessionKey      string
	DatabaseURL     string
	Redis           Redis
	Kafka           Kafka
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays
// lean. Empty DatabaseURL/Redis.URL/Kafka.Brokers select the in-memory
// fallbacks, which keeps local development dependency-free.
func FromEnv() Server {
	addr := os.Getenv("DAYBOUND_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	adminToken := os.Getenv("DAYBOUND_ADMIN_TOKEN")

	sessionKey := os.Getenv("DAYBOUND_SESSION_KEY")
	if sessionKey == "" {
		// Use a default for development - should be overridden in production
		sessionKey = "dev-secret-key-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("DAYBOUND_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	auditTopic := os.Getenv("DAYBOUND_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "daybound.audit"
	}

	return Server{
		Addr:        addr,
		AdminToken:  adminToken,
		SessionKey:  sessionKey,
		DatabaseURL: os.Getenv("DAYBOUND_DATABASE_URL"),
		Redis: Redis{
			URL:          os.Getenv("DAYBOUND_REDIS_URL"),
			PoolSize:     envInt("DAYBOUND_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("DAYBOUND_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: Kafka{
			Brokers:    brokers,
			AuditTopic: auditTopic,
		},
		ShutdownTimeout: 10 * time.Second,
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

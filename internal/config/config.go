package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns a pgx-compatible connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Auth stores session and credential settings.
type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
	// BcryptCost is the password hashing cost used at sign-up.
	BcryptCost int
	// DevCourierFallback substitutes the first active courier when no
	// session is present. Development/testing only; off by default.
	DevCourierFallback bool
}

// RateLimit stores the per-IP token bucket settings.
type RateLimit struct {
	Enabled    bool
	Max        int           // requests per window
	Window     time.Duration // window size
	TTL        time.Duration // idle bucket eviction
	MaxBuckets int
}

// Kafka stores the order-event consumer settings. An empty broker list
// disables the consumer.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Pprof stores the debug server settings.
type Pprof struct {
	Enabled bool
	Port    int
	User    string
	Pass    string
}

// Config stores service settings.
type Config struct {
	Port      int
	DB        DB
	Auth      Auth
	RateLimit RateLimit
	Kafka     Kafka
	Pprof     Pprof
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      DefaultPort(),
		DB:        DefaultDB(),
		Auth:      DefaultAuth(),
		RateLimit: DefaultRateLimit(),
		Kafka:     DefaultKafka(),
		Pprof:     DefaultPprof(),
	}

	cfg.Port = envInt("PORT", cfg.Port)

	cfg.DB.Host = envString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envString("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envString("POSTGRES_DB", cfg.DB.Name)

	cfg.Auth.JWTSecret = envString("AUTH_JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTL = envDuration("AUTH_TOKEN_TTL", cfg.Auth.TokenTTL)
	cfg.Auth.BcryptCost = envInt("AUTH_BCRYPT_COST", cfg.Auth.BcryptCost)
	cfg.Auth.DevCourierFallback = envBool("AUTH_DEV_COURIER_FALLBACK", cfg.Auth.DevCourierFallback)

	cfg.RateLimit.Enabled = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.Max = envInt("RATE_LIMIT_MAX", cfg.RateLimit.Max)
	cfg.RateLimit.Window = envMillis("RATE_LIMIT_WINDOW_MS", cfg.RateLimit.Window)
	cfg.RateLimit.TTL = envDuration("RATE_LIMIT_BUCKET_TTL", cfg.RateLimit.TTL)
	cfg.RateLimit.MaxBuckets = envInt("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets)

	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.GroupID = envString("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.Topic = envString("KAFKA_ORDERS_TOPIC", cfg.Kafka.Topic)

	cfg.Pprof.Enabled = envBool("PPROF_ENABLED", cfg.Pprof.Enabled)
	cfg.Pprof.Port = envInt("PPROF_PORT", cfg.Pprof.Port)
	cfg.Pprof.User = envString("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envString("PPROF_PASSWORD", cfg.Pprof.Pass)

	// Load may run more than once in a process, register the flag only once.
	if pflag.CommandLine.Lookup("port") == nil {
		pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	}
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Pprof.Enabled && (c.Pprof.Port <= 0 || c.Pprof.Port > 65535) {
		return fmt.Errorf("invalid pprof port: %d", c.Pprof.Port)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("invalid token ttl: %v", c.Auth.TokenTTL)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("empty jwt secret")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Max <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit: max=%d window=%v", c.RateLimit.Max, c.RateLimit.Window)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("warning: %s=%q is not an integer, using %d", key, v, fallback)
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("warning: %s=%q is not a bool, using %v", key, v, fallback)
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("warning: %s=%q is not a duration, using %v", key, v, fallback)
	}
	return fallback
}

// envMillis reads an integer number of milliseconds, matching the
// RATE_LIMIT_WINDOW_MS naming inherited from the deployment environment.
func envMillis(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
		log.Printf("warning: %s=%q is not a millisecond count, using %v", key, v, fallback)
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

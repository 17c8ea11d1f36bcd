package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "courier_panel",
}

var defaultAuth = Auth{
	JWTSecret:          "dev-secret-change-me",
	TokenTTL:           24 * time.Hour,
	BcryptCost:         bcrypt.DefaultCost,
	DevCourierFallback: false,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Max:        100,
	Window:     time.Minute,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultKafka = Kafka{
	Brokers: nil,
	GroupID: "courier-panel",
	Topic:   "orders.events",
}

var defaultPprof = Pprof{
	Enabled: false,
	Port:    6060,
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultAuth returns the default auth settings.
func DefaultAuth() Auth {
	return defaultAuth
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultPprof returns the default pprof server settings.
func DefaultPprof() Pprof {
	return defaultPprof
}

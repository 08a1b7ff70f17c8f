// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the wellness service.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Consumer ConsumerConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

// ConsumerConfig holds the progress consumer tuning.
type ConsumerConfig struct {
	MaxDeliver int
	AckWait    time.Duration
	CacheTTL   time.Duration
}

// Load reads configuration from the environment, after sourcing an optional
// .env file.
func Load() (*Config, error) {
	// Don't fail if .env doesn't exist; production uses real env vars.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnvInt("DATABASE_PORT", 5432),
			User:     getEnv("DATABASE_USER", "wellness"),
			Password: getEnv("DATABASE_PASSWORD", "wellness"),
			Database: getEnv("DATABASE_NAME", "wellness"),
			SSLMode:  getEnv("DATABASE_SSL_MODE", "disable"),
			MaxConns: getEnvInt("DATABASE_MAX_CONNS", 25),
			MinConns: getEnvInt("DATABASE_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		NATS: NATSConfig{
			URL:           getEnv("NATS_URL", "nats://localhost:4222"),
			SubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "wellness"),
			MaxReconnects: getEnvInt("NATS_MAX_RECONNECTS", 10),
		},
		Consumer: ConsumerConfig{
			MaxDeliver: getEnvInt("CONSUMER_MAX_DELIVER", 5),
		},
	}

	var err error
	if cfg.Server.ShutdownTimeout, err = getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.NATS.ReconnectWait, err = getEnvDuration("NATS_RECONNECT_WAIT", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.Consumer.AckWait, err = getEnvDuration("CONSUMER_ACK_WAIT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.Consumer.CacheTTL, err = getEnvDuration("LEADERBOARD_CACHE_TTL", 10*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Address returns the Redis address.
func (c RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

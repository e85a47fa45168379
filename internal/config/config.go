package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// CasdoorConfig holds identity provider settings.
type CasdoorConfig struct {
	Endpoint     string `env:"CASDOOR_ENDPOINT"`
	ClientID     string `env:"CASDOOR_CLIENT_ID"`
	ClientSecret string `env:"CASDOOR_CLIENT_SECRET"`
	Cert         string `env:"CASDOOR_CERT"`
	Organization string `env:"CASDOOR_ORGANIZATION"`
	Application  string `env:"CASDOOR_APPLICATION"`
}

// KafkaConfig holds event publishing settings. Publishing is optional; when
// Brokers is empty the service falls back to a no-op publisher.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"practice-exam-events"`
}

// Config holds all runtime configuration, loaded from environment variables
// (a local .env file is honored when present).
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisURL    string `env:"REDIS_URL"`

	LogLevelName string `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel     slog.Level

	Casdoor CasdoorConfig
	Kafka   KafkaConfig
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (*Config, error) {
	// Best effort: absent .env is fine in containerized deployments.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	switch cfg.LogLevelName {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevelName)
	}

	return cfg, nil
}

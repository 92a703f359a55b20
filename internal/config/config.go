// Package config loads the process configuration from environment
// variables (optionally seeded from a .env file) into a typed struct with
// `env` struct tags parsed by caarlos0/env.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the complete process configuration, grouped into core auth
// parameters, ambient server/logging parameters, and domain (storage/cache)
// parameters.
type Config struct {
	// Core — authentication pipeline.
	JWTSecret                   string `env:"JWT_SECRET,required"`
	CertificateValidityHours    int    `env:"CERTIFICATE_VALIDITY_HOURS" envDefault:"24"`
	PowDifficulty               int    `env:"POW_DIFFICULTY" envDefault:"4"`
	PowChallengeLifetimeMinutes int    `env:"POW_CHALLENGE_LIFETIME_MINUTES" envDefault:"10"`

	// Ambient — process/server.
	ServerHost            string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort            int    `env:"SERVER_PORT" envDefault:"3000"`
	Env                   string `env:"ENV" envDefault:"development"`
	LogLevel              string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty             bool   `env:"LOG_PRETTY" envDefault:"false"`
	RequestTimeoutSeconds int    `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
	MaxRequestBodyBytes   int64  `env:"MAX_REQUEST_BODY_BYTES" envDefault:"10485760"`

	// Domain — object storage.
	S3Bucket               string `env:"S3_BUCKET,required"`
	S3Region               string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint             string `env:"S3_ENDPOINT"`
	S3AccessKeyID          string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey      string `env:"S3_SECRET_ACCESS_KEY"`
	S3ForcePathStyle       bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
	S3UploadTimeoutSeconds int    `env:"S3_UPLOAD_TIMEOUT_SECONDS" envDefault:"30"`

	// Domain — existence cache.
	RedisEnabled             bool   `env:"REDIS_ENABLED" envDefault:"false"`
	RedisHost                string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort                int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword            string `env:"REDIS_PASSWORD" envDefault:""`
	ExistenceCacheTTLSeconds int    `env:"EXISTENCE_CACHE_TTL_SECONDS" envDefault:"60"`
}

// Load reads a .env file if present (ignored if absent) and then parses the
// environment into a Config, failing if any required variable is missing.
// JWT_SECRET has no development fallback: an operator must set it even for
// a local run (see DESIGN.md, Open Question 2).
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if loadErr := godotenv.Load(); loadErr != nil {
			return nil, fmt.Errorf("config: loading .env: %w", loadErr)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// MustLoad is Load but panics on error, for use at process startup where
// there is no sensible recovery.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

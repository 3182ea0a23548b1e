package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTPPort int `env:"HTTP_PORT" env-default:"8080"`
	GRPCPort int `env:"GRPC_PORT" env-default:"9090"`

	PostgresURL         string `env:"POSTGRES_URL" env-required:"true"`
	PostgresMaxConn     int    `env:"POSTGRES_MAX_CONN" env-default:"10"`
	PostgresMinConn     int    `env:"POSTGRES_MIN_CONN" env-default:"1"`
	PostgresAutoMigrate bool   `env:"POSTGRES_AUTO_MIGRATE" env-default:"false"`

	RedisURL        string        `env:"REDIS_URL" env-default:"localhost:6379"`
	PendingCountTTL time.Duration `env:"PENDING_COUNT_TTL" env-default:"30s"`

	KafkaBrokers        []string      `env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
	NotificationTopic   string        `env:"NOTIFICATION_TOPIC" env-default:"bimbingan-notifications"`
	NotificationTimeout time.Duration `env:"NOTIFICATION_TIMEOUT" env-default:"10s"`

	S3Endpoint        string        `env:"S3_ENDPOINT" env-default:"http://localhost:9000"`
	S3Region          string        `env:"S3_REGION" env-default:"us-east-1"`
	S3AccessKeyID     string        `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string        `env:"S3_SECRET_ACCESS_KEY"`
	S3Bucket          string        `env:"S3_BUCKET" env-default:"bimbingan"`
	DocumentURLTTL    time.Duration `env:"DOCUMENT_URL_TTL" env-default:"15m"`
	MaxUploadBytes    int64         `env:"MAX_UPLOAD_BYTES" env-default:"20971520"`

	ReminderInterval   time.Duration `env:"REMINDER_INTERVAL" env-default:"1h"`
	ReminderStaleAfter time.Duration `env:"REMINDER_STALE_AFTER" env-default:"72h"`

	ProgressRetries    int           `env:"PROGRESS_RETRIES" env-default:"3"`
	ProgressRetryDelay time.Duration `env:"PROGRESS_RETRY_DELAY" env-default:"100ms"`
}

func New() (*Config, error) {
	return Load("./config/.env")
}

// Load reads path when it exists and the process environment otherwise.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPPort <= 0 || cfg.GRPCPort <= 0 {
		return fmt.Errorf("ports must be positive, got http=%d grpc=%d", cfg.HTTPPort, cfg.GRPCPort)
	}
	if len(cfg.KafkaBrokers) == 0 {
		return errors.New("at least one kafka broker is required")
	}
	if cfg.PostgresMinConn > cfg.PostgresMaxConn {
		return fmt.Errorf("POSTGRES_MIN_CONN (%d) exceeds POSTGRES_MAX_CONN (%d)", cfg.PostgresMinConn, cfg.PostgresMaxConn)
	}
	if cfg.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	if cfg.ProgressRetries <= 0 {
		return errors.New("PROGRESS_RETRIES must be positive")
	}
	return nil
}

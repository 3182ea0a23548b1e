package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://u:p@db:5432/simta")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("PENDING_COUNT_TTL", "1m")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/simta", cfg.PostgresURL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Minute, cfg.PendingCountTTL)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "bimbingan-notifications", cfg.NotificationTopic)
	assert.Equal(t, int64(20<<20), cfg.MaxUploadBytes)
}

func TestLoad_FromFile(t *testing.T) {
	// the .env parser exports values into the process environment; register them for restore
	t.Setenv("POSTGRES_URL", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("S3_BUCKET", "")

	path := filepath.Join(t.TempDir(), ".env")
	content := "POSTGRES_URL=postgres://file/db\nHTTP_PORT=8181\nS3_BUCKET=docs\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://file/db", cfg.PostgresURL)
	assert.Equal(t, 8181, cfg.HTTPPort)
	assert.Equal(t, "docs", cfg.S3Bucket)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("POSTGRES_URL", "")
	require.NoError(t, os.Unsetenv("POSTGRES_URL"))

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPPort:        8080,
			GRPCPort:        9090,
			KafkaBrokers:    []string{"k:9092"},
			PostgresMinConn: 1,
			PostgresMaxConn: 4,
			MaxUploadBytes:  1024,
			ProgressRetries: 3,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, false},
		{"ZeroPort", func(c *Config) { c.HTTPPort = 0 }, true},
		{"NoBrokers", func(c *Config) { c.KafkaBrokers = nil }, true},
		{"MinAboveMax", func(c *Config) { c.PostgresMinConn = 10 }, true},
		{"NoUploadLimit", func(c *Config) { c.MaxUploadBytes = 0 }, true},
		{"NoRetries", func(c *Config) { c.ProgressRetries = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := validateConfig(cfg)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

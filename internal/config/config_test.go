package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/flux_test")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "https://api.buffer.com", cfg.BufferBaseURL)
	assert.Equal(t, 15*time.Second, cfg.PublishTimeout)
	assert.Equal(t, "@every 1m", cfg.WorkerSchedule)
	assert.Equal(t, 10, cfg.WorkerBatchLimit)
	assert.Equal(t, 5*time.Minute, cfg.ClaimTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/flux_test")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("WORKER_BATCH_LIMIT", "25")
	t.Setenv("PUBLISH_TIMEOUT", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.WorkerBatchLimit)
	assert.Equal(t, 30*time.Second, cfg.PublishTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/flux_test")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("WORKER_BATCH_LIMIT", "-3")
	t.Setenv("PUBLISH_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.WorkerBatchLimit)
	assert.Equal(t, 15*time.Second, cfg.PublishTimeout)
}

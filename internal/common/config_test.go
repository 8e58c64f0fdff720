package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:docintake.db", cfg.Database.DSN)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, 0, cfg.Batch.Workers)
	assert.Equal(t, 256, cfg.Batch.QueueSize)
	assert.Equal(t, 2*time.Minute, cfg.Batch.ProcessTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_URL", "postgres://localhost/docintake")
	t.Setenv("BATCH_WORKERS", "8")
	t.Setenv("BATCH_PROCESS_TIMEOUT", "30s")
	t.Setenv("DB_MAX_CONNS", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/docintake", cfg.Database.DSN)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, 30*time.Second, cfg.Batch.ProcessTimeout)
	assert.Equal(t, int32(20), cfg.Database.MaxConns) // unparseable falls back
	assert.NoError(t, cfg.Validate())
}

func TestValidateConfig(t *testing.T) {
	cfg := LoadConfig()
	cfg.Database.Driver = "mysql"
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	cfg = LoadConfig()
	cfg.Batch.QueueSize = 0
	assert.Error(t, cfg.Validate())
}

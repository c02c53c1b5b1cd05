package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PORT", "")
	t.Setenv("WORKER_CONCURRENCY", "")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "career_copilot", cfg.Database.DBName)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.Worker.PollInterval)
}

func TestValidateRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg := Load()
	err := cfg.Validate()

	require.Error(t, err, "missing credential must abort startup before any route is reachable")
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestValidatePassesWithAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := Load()
	assert.NoError(t, cfg.Validate())
}

func TestGetDatabaseDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "copilot")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "copilot_test")

	cfg := Load()
	dsn := cfg.GetDatabaseDSN()

	assert.Equal(t, "host=db.internal port=5433 user=copilot password=secret dbname=copilot_test sslmode=disable", dsn)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "recruiting-service", cfg.App.Name)
	assert.Equal(t, StorageBackendFile, cfg.Storage.Backend)
	assert.Equal(t, "data/db.json", cfg.Storage.FilePath)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Postgres.RunMigrations)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("OWNER_EMAIL", "boss@example.com")
	t.Setenv("AUTH_VERIFICATION_TTL_MINUTES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, StorageBackendPostgres, cfg.Storage.Backend)
	assert.Equal(t, "boss@example.com", cfg.Owner.Email)
	assert.Equal(t, 5, cfg.Auth.VerificationTTLMinutes)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongodb")

	_, err := Load()
	assert.Error(t, err)
}

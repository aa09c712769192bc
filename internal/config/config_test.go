package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "coursehub", cfg.Database.DBName)
	assert.Equal(t, 10, cfg.Search.PageSize)
	assert.Equal(t, 4, cfg.Search.MinQueryLength)
	assert.Equal(t, 7.0, cfg.Search.Weights.Code)
	assert.Equal(t, 0.95, cfg.Search.Instructor.LastNameWeight)
	assert.Equal(t, 0.8, cfg.Search.Instructor.TrustThreshold)
}

func TestLoadConfigFromFile(t *testing.T) {
	content := []byte(`
server:
  port: "9090"
search:
  page_size: 25
  weights:
    code: 12
`)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 25, cfg.Search.PageSize)
	assert.Equal(t, 12.0, cfg.Search.Weights.Code)
	// Untouched values keep their defaults.
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, 6.0, cfg.Search.Weights.Content)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SEARCH_PAGE_SIZE", "50")
	t.Setenv("SEARCH_INSTR_TRUST_THRESHOLD", "0.9")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, 50, cfg.Search.PageSize)
	assert.Equal(t, 0.9, cfg.Search.Instructor.TrustThreshold)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	conn := cfg.GetPostgresConnectionString()
	assert.Contains(t, conn, "host=localhost")
	assert.Contains(t, conn, "dbname=coursehub")
	assert.Contains(t, conn, "sslmode=disable")
}

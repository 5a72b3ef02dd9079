package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, int64(2*1024*1024), cfg.BodyLimitBytes)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, HistoryBackendFile, cfg.History.Backend)
	assert.Equal(t, "checklist-salvos", cfg.History.Key)
	assert.Equal(t, 10, cfg.History.Capacity)
	assert.Equal(t, 24*time.Hour, cfg.Export.SignedURLTTL)
	assert.Equal(t, 2, cfg.Evidence.Workers)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HISTORY_BACKEND", " Redis ")
	t.Setenv("HISTORY_CAPACITY", "-1")
	t.Setenv("EXPORT_SIGNED_URL_TTL", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, HistoryBackendRedis, cfg.History.Backend)
	assert.Equal(t, 10, cfg.History.Capacity)
	assert.Equal(t, 24*time.Hour, cfg.Export.SignedURLTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestExportLocationFallback(t *testing.T) {
	assert.Equal(t, time.UTC, ExportConfig{}.Location())
	assert.Equal(t, time.UTC, ExportConfig{Timezone: "Nowhere/Invalid"}.Location())
}

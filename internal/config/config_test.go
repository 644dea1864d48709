package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PANDASCORE_TOKEN", "PANDASCORE_BASE_URL", "DB_PATH", "SERVER_PORT", "LOG_LEVEL", "CACHE_TTL", "SHARE_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "vct.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "https://api.pandascore.co", cfg.PandaScoreBaseURL)
	assert.False(t, cfg.SyncEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PANDASCORE_TOKEN", "secret")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("SHARE_BASE_URL", "https://vct.example")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.True(t, cfg.SyncEnabled())
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "https://vct.example", cfg.ShareBaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{name: "log level", key: "LOG_LEVEL", value: "loud"},
		{name: "cache ttl", key: "CACHE_TTL", value: "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)
			_, err := Load(zerolog.Nop())
			assert.Error(t, err)
		})
	}
}

package config

import (
	"fmt"
	"os"
	"time"

	"vct-standings/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	PandaScoreToken   string
	PandaScoreBaseURL string
	DBPath            string
	ServerPort        string
	LogLevel          zerolog.Level
	CacheTTL          time.Duration
	ShareBaseURL      string
}

// SyncEnabled reports whether a PandaScore token was configured.
func (c *Config) SyncEnabled() bool {
	return c.PandaScoreToken != ""
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cacheTTL := constants.DefaultCacheTTL
	if v := os.Getenv("CACHE_TTL"); v != "" {
		cacheTTL, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
		}
	}

	cfg := &Config{
		PandaScoreToken:   getEnv("PANDASCORE_TOKEN", ""),
		PandaScoreBaseURL: getEnv("PANDASCORE_BASE_URL", "https://api.pandascore.co"),
		DBPath:            getEnv("DB_PATH", "vct.db"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		LogLevel:          level,
		CacheTTL:          cacheTTL,
		ShareBaseURL:      getEnv("SHARE_BASE_URL", ""),
	}

	if !cfg.SyncEnabled() {
		logger.Warn().Msg("PANDASCORE_TOKEN not set, sync is disabled")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel.String()).
		Dur("cache_ttl", cfg.CacheTTL).
		Bool("sync_enabled", cfg.SyncEnabled()).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)

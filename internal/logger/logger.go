package logger

import (
	"os"

	"vct-standings/internal/config"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Logger()

	logger = logger.Level(zerolog.DebugLevel)

	return logger
}

// SetLevel applies the configured level to every logger. The bootstrap
// logger starts at debug since the configuration depends on it.
func SetLevel(cfg *config.Config) {
	zerolog.SetGlobalLevel(cfg.LogLevel)
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(SetLevel),
)

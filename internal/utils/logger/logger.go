package logger

import (
	"os"

	"golang.org/x/exp/slog"

	"budgetkeeper/internal/app/server/config"
)

// New builds the process logger for the given environment: local gets a
// human-readable handler at debug level, dev gets JSON at debug level and
// prod gets JSON at info level.
func New(env string) *slog.Logger {
	switch env {
	case config.EnvLocal:
		return setupPrettySlog()
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
}

func setupPrettySlog() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

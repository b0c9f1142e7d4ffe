package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"siigosync/internal/config"
)

// New создает логгер в зависимости от окружения:
// local - цветной вывод с DEBUG, dev - JSON с DEBUG, prod - JSON с INFO.
// Непустой level (debug, info, warn, error) перекрывает уровень окружения.
func New(env string, level ...string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvLocal, "":
		log = setupPrettySlog(levelOr(slog.LevelDebug, level))
	case config.EnvDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelOr(slog.LevelDebug, level)}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelOr(slog.LevelInfo, level)}),
		)
	}

	return log
}

func setupPrettySlog(level slog.Level) *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	return slog.New(opts.NewPrettyHandler(os.Stdout))
}

func levelOr(def slog.Level, level []string) slog.Level {
	if len(level) == 0 {
		return def
	}

	switch strings.ToLower(strings.TrimSpace(level[0])) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return def
	}
}

// Discard логгер, который ничего не пишет. Используется в тестах.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

package logger

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

// Logger пишет по строке на запрос. Уровень зависит от кода ответа:
// 5xx - error, 4xx - warn, остальное - info, для quiet путей - debug.
type Logger struct {
	log   *slog.Logger
	quiet map[string]struct{}
}

func New(log *slog.Logger, quietPaths ...string) *Logger {
	quiet := make(map[string]struct{}, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = struct{}{}
	}
	return &Logger{
		log:   log.With(slog.String("component", "http_logger")),
		quiet: quiet,
	}
}

func (l *Logger) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		path := ctx.URL().Path

		next(ctx)

		status := ctx.Status()
		attrs := []slog.Attr{
			slog.String("method", ctx.Method()),
			slog.String("path", path),
			slog.String("operation", ctx.Operation().OperationID),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote_addr", ctx.RemoteAddr()),
		}
		if reqID := chimw.GetReqID(ctx.Context()); reqID != "" {
			attrs = append(attrs, slog.String("request_id", reqID))
		}

		l.log.LogAttrs(context.Background(), l.level(path, status), "http request", attrs...)
	}
}

func (l *Logger) level(path string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	}
	if _, ok := l.quiet[path]; ok {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

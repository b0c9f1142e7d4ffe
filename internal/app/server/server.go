package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"siigosync/internal/app"
	"siigosync/internal/app/server/api"
	"siigosync/internal/app/server/api/http/health"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Run поднимает HTTP сервис и блокируется до отмены ctx
func Run(ctx context.Context, a *app.App, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              a.Config.Server.RunAddress,
		Handler:           api.New(a.Config, apiDeps(a), log),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func apiDeps(a *app.App) api.Deps {
	checks := map[string]health.Check{"storage": a.Storage.Ping}
	if ping := a.RedisPing(); ping != nil {
		checks["redis"] = ping
	}

	return api.Deps{
		Sync:    a.Sync,
		Orders:  a.Orders,
		Metrics: a.Metrics.Handler(),
		Checks:  checks,
	}
}

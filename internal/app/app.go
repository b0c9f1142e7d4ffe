package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"siigosync/internal/config"
	"siigosync/internal/domain/order"
	"siigosync/internal/domain/sync"
	"siigosync/internal/infrastructure/metrics"
	"siigosync/internal/infrastructure/siigo"
	"siigosync/internal/infrastructure/storage"
)

const redisPingTimeout = 3 * time.Second

// App собранные зависимости сервиса: хранилище, клиент Siigo,
// сервис синхронизации и диспетчер событий заказа.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Storage storage.Storage
	Siigo   *siigo.Client
	Sync    *sync.Service
	Orders  *order.Dispatcher
	Metrics *metrics.Metrics

	redis *redis.Client
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := storage.New(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	app := &App{
		Config:  cfg,
		Log:     log,
		Storage: store,
		Metrics: metrics.New(),
	}

	opts := []siigo.Option{siigo.WithRequestObserver(app.Metrics)}
	if cfg.Redis.Addr != "" {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		err := app.redis.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("connect to redis %s: %w", cfg.Redis.Addr, err)
		}

		opts = append(opts, siigo.WithTokenStore(siigo.NewRedisTokenStore(app.redis, "", cfg.Siigo.ClientID)))
		log.Debug("siigo token shared through redis", "addr", cfg.Redis.Addr)
	}

	app.Siigo = siigo.New(cfg.Siigo, log, opts...)
	app.Sync = sync.NewService(app.Siigo, store.Products(), store.Invoices(), log).WithObserver(app.Metrics)

	app.Orders = order.NewDispatcher(log)
	sync.RegisterHandlers(app.Orders, app.Sync)

	return app, nil
}

func (a *App) SyncInventory(ctx context.Context) (*sync.Result, error) {
	return a.Sync.SyncInventory(ctx)
}

func (a *App) PullProducts(ctx context.Context) (*sync.Result, error) {
	return a.Sync.PullProducts(ctx)
}

func (a *App) PushProducts(ctx context.Context) (*sync.Result, error) {
	return a.Sync.PushProducts(ctx)
}

func (a *App) ResyncInvoices(ctx context.Context, events []order.Event) (*sync.Result, error) {
	return a.Sync.ResyncInvoices(ctx, events)
}

// ApplyOrder передает событие заказа зарегистрированным обработчикам
func (a *App) ApplyOrder(ctx context.Context, event order.Event) ([]order.Outcome, error) {
	return a.Orders.Dispatch(ctx, event)
}

// RedisPing проверка redis для health, nil если redis не настроен
func (a *App) RedisPing() func(ctx context.Context) error {
	if a.redis == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return a.redis.Ping(ctx).Err()
	}
}

func (a *App) Close() error {
	var firstErr error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			firstErr = err
		}
	}
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

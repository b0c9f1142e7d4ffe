package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"siigosync/internal/config"
	"siigosync/internal/domain/invoice"
	"siigosync/internal/domain/product"
	"siigosync/internal/infrastructure/storage/postgres"
	"siigosync/internal/infrastructure/storage/sqlite"
)

// Storage локальный каталог товаров и метаданные заказов
type Storage interface {
	Products() product.Repository
	Invoices() invoice.Repository
	Ping(ctx context.Context) error
	Close() error
}

// New открывает хранилище по cfg.Storage.Driver
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		s, err := sqlite.New(cfg.Storage.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		return &adapter{products: s.Products(), invoices: s.Invoices(), ping: s.Ping, close: s.Close}, nil
	case config.DriverPostgres:
		s, err := postgres.New(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &adapter{products: s.Products(), invoices: s.Invoices(), ping: s.Ping, close: s.Close}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

type adapter struct {
	products product.Repository
	invoices invoice.Repository
	ping     func(context.Context) error
	close    func() error
}

func (a *adapter) Products() product.Repository { return a.products }

func (a *adapter) Invoices() invoice.Repository { return a.invoices }

func (a *adapter) Ping(ctx context.Context) error { return a.ping(ctx) }

func (a *adapter) Close() error { return a.close() }

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"siigosync/internal/config"
	"siigosync/internal/infrastructure/migration"
)

type Storage struct {
	pool     *pgxpool.Pool
	products *ProductRepository
	invoices *InvoiceRepository
}

// New открывает пул и применяет миграции из cfg.Storage.Migrations
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	pool, err := pgxpool.New(ctx, cfg.Storage.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	mg := migration.NewMigration(cfg.Storage.Migrations, cfg.Storage.DatabaseURI, migration.DefaultEngine, log)
	if _, err := mg.Up(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &Storage{
		pool:     pool,
		products: NewProductRepository(pool, log),
		invoices: NewInvoiceRepository(pool, log),
	}, nil
}

func (s *Storage) Products() *ProductRepository {
	return s.products
}

func (s *Storage) Invoices() *InvoiceRepository {
	return s.invoices
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

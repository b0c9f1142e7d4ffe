package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
)

// Storage локальный каталог и метаданные заказов в файле SQLite
type Storage struct {
	db       *sql.DB
	products *ProductRepository
	invoices *InvoiceRepository
}

func New(path string, log *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Один писатель: SQLite все равно сериализует запись
	db.SetMaxOpenConns(1)

	s := &Storage{db: db}

	if err := s.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite tables: %w", err)
	}

	s.products = NewProductRepository(db, log)
	s.invoices = NewInvoiceRepository(db, log)

	return s, nil
}

func (s *Storage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '0',
			stock INTEGER NOT NULL DEFAULT 0,
			remote_id TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'publish',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS order_invoices (
			order_id TEXT PRIMARY KEY,
			invoice_id TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
	`)

	return err
}

func (s *Storage) Products() *ProductRepository {
	return s.products
}

func (s *Storage) Invoices() *InvoiceRepository {
	return s.invoices
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

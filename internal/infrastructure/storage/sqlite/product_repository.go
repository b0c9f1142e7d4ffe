package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"

	"siigosync/internal/domain/product"
)

type ProductRepository struct {
	db  *sql.DB
	log *slog.Logger
	now func() time.Time
}

func NewProductRepository(db *sql.DB, log *slog.Logger) *ProductRepository {
	return &ProductRepository{
		db:  db,
		log: log.With("component", "product_repository"),
		now: time.Now,
	}
}

const productColumns = `id, code, name, price, stock, remote_id, status, created_at, updated_at`

// List товары в порядке добавления; limit <= 0 означает все
func (r *ProductRepository) List(ctx context.Context, limit int) ([]product.Product, error) {
	query := "SELECT " + productColumns + " FROM products ORDER BY id"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list products", "error", err)
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE code = ?", code)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, product.ErrNotFound
	}
	if err != nil {
		r.log.Error("failed to get product", "code", code, "error", err)
		return nil, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

// Save вставляет товар или обновляет существующий с тем же кодом
func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	if !p.HasCode() {
		return product.ErrEmptyCode
	}

	now := r.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = product.StatusPublish
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (code, name, price, stock, remote_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			stock = excluded.stock,
			remote_id = excluded.remote_id,
			status = excluded.status,
			updated_at = excluded.updated_at
		RETURNING id
	`, p.Code, p.Name, p.Price.String(), p.Stock, p.RemoteID, p.Status,
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339)).Scan(&p.ID)
	if err != nil {
		r.log.Error("failed to save product", "code", p.Code, "error", err)
		return fmt.Errorf("save product: %w", err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row scanner) (*product.Product, error) {
	var p product.Product
	var price, createdAt, updatedAt string

	if err := row.Scan(&p.ID, &p.Code, &p.Name, &price, &p.Stock, &p.RemoteID, &p.Status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("%w: price %q", product.ErrInvalidData, price)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &p, nil
}

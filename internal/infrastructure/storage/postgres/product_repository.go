package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"

	"siigosync/internal/domain/product"
)

type ProductRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewProductRepository(pool *pgxpool.Pool, log *slog.Logger) *ProductRepository {
	return &ProductRepository{
		pool: pool,
		log:  log.With("component", "product_repository"),
	}
}

const productColumns = `id, code, name, price::text, stock, remote_id, status, created_at, updated_at`

func (r *ProductRepository) List(ctx context.Context, limit int) ([]product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
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
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code)

	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, product.ErrNotFound
	}
	if err != nil {
		r.log.Error("failed to get product", "code", code, "error", err)
		return nil, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

// Save upsert по коду товара
func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	if !p.HasCode() {
		return product.ErrEmptyCode
	}
	if p.Status == "" {
		p.Status = product.StatusPublish
	}

	const query = `
		INSERT INTO products (code, name, price, stock, remote_id, status)
		VALUES ($1, $2, $3::numeric, $4, $5, $6)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			stock = EXCLUDED.stock,
			remote_id = EXCLUDED.remote_id,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.Code, p.Name, p.Price.String(), p.Stock, p.RemoteID, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		r.log.Error("failed to save product", "code", p.Code, "error", err)
		return fmt.Errorf("save product: %w", err)
	}

	return nil
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	var price string

	err := row.Scan(&p.ID, &p.Code, &p.Name, &price, &p.Stock, &p.RemoteID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("%w: price %q", product.ErrInvalidData, price)
	}

	return &p, nil
}

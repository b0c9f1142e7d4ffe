package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"siigosync/internal/domain/invoice"
)

type InvoiceRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewInvoiceRepository(pool *pgxpool.Pool, log *slog.Logger) *InvoiceRepository {
	return &InvoiceRepository{
		pool: pool,
		log:  log.With("component", "invoice_repository"),
	}
}

func (r *InvoiceRepository) GetInvoiceID(ctx context.Context, orderID string) (string, error) {
	var invoiceID string
	err := r.pool.QueryRow(ctx,
		`SELECT invoice_id FROM order_invoices WHERE order_id = $1`, orderID).Scan(&invoiceID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", invoice.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get invoice id: %w", err)
	}
	return invoiceID, nil
}

func (r *InvoiceRepository) SaveInvoiceID(ctx context.Context, orderID, invoiceID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO order_invoices (order_id, invoice_id)
		VALUES ($1, $2)
		ON CONFLICT (order_id) DO UPDATE SET invoice_id = EXCLUDED.invoice_id`,
		orderID, invoiceID)
	if err != nil {
		r.log.Error("failed to save invoice id", "order_id", orderID, "error", err)
		return fmt.Errorf("save invoice id: %w", err)
	}
	return nil
}

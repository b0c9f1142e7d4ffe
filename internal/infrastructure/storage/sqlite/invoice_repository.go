package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"siigosync/internal/domain/invoice"
)

// InvoiceRepository id счетов Siigo, привязанные к заказам магазина
type InvoiceRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewInvoiceRepository(db *sql.DB, log *slog.Logger) *InvoiceRepository {
	return &InvoiceRepository{
		db:  db,
		log: log.With("component", "invoice_repository"),
	}
}

func (r *InvoiceRepository) GetInvoiceID(ctx context.Context, orderID string) (string, error) {
	var invoiceID string
	err := r.db.QueryRowContext(ctx,
		"SELECT invoice_id FROM order_invoices WHERE order_id = ?", orderID).Scan(&invoiceID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", invoice.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get invoice id: %w", err)
	}
	return invoiceID, nil
}

func (r *InvoiceRepository) SaveInvoiceID(ctx context.Context, orderID, invoiceID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO order_invoices (order_id, invoice_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(order_id) DO UPDATE SET invoice_id = excluded.invoice_id
	`, orderID, invoiceID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		r.log.Error("failed to save invoice id", "order_id", orderID, "error", err)
		return fmt.Errorf("save invoice id: %w", err)
	}
	return nil
}

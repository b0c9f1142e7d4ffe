package sync

import (
	"context"
	"time"

	"siigosync/internal/domain/invoice"
	"siigosync/internal/domain/product"
)

// Имена проходов синхронизации, совпадают с ручными триггерами
const (
	OpSyncInventory  = "sync_inventory"
	OpPullProducts   = "sync_products_from_remote"
	OpPushProducts   = "sync_products_to_remote"
	OpInvoiceResync  = "invoice_resync"
	OpInvoiceSubmit  = "invoice_submit"
	OpInventoryDelta = "inventory_delta"
)

// Remote операции Siigo, которые нужны сверке
type Remote interface {
	ListProducts(ctx context.Context) ([]product.Product, error)
	CreateProduct(ctx context.Context, p product.Product) (*product.Product, error)
	UpdateInventory(ctx context.Context, code string, stock int) error
	CreateInvoice(ctx context.Context, inv invoice.Invoice) (string, error)
}

// ItemError ошибка по одному товару или заказу внутри прохода
type ItemError struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// Result итог одного прохода синхронизации
type Result struct {
	RunID     string        `json:"run_id"`
	Operation string        `json:"operation"`
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	Count     int           `json:"count"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Errors    []ItemError   `json:"errors,omitempty"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// PassObserver получает итог каждого завершенного прохода
type PassObserver interface {
	ObservePass(res *Result)
}

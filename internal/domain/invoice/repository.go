package invoice

import "context"

// Repository метаданные заказа: id счета, выставленного в Siigo
type Repository interface {
	GetInvoiceID(ctx context.Context, orderID string) (string, error)
	SaveInvoiceID(ctx context.Context, orderID, invoiceID string) error
}

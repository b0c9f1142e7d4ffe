package sync

import (
	"context"

	"siigosync/internal/domain/order"
)

// InventoryHandler переносит позиции заказа в остатки.
// Sign -1 для выполненного заказа, +1 для возврата.
type InventoryHandler struct {
	Service Servicer
	Sign    int
}

func (h *InventoryHandler) Name() string {
	if h.Sign > 0 {
		return "inventory_restock"
	}
	return "inventory_deduct"
}

func (h *InventoryHandler) Handle(ctx context.Context, event order.Event) (*order.Outcome, error) {
	res, err := h.Service.ApplyOrderDelta(ctx, event, h.Sign)
	if err != nil {
		return nil, err
	}
	return outcome(h.Name(), res), nil
}

// InvoiceHandler выставляет счет в Siigo при переходе заказа в processing
type InvoiceHandler struct {
	Service Servicer
}

func (h *InvoiceHandler) Name() string {
	return "invoice"
}

func (h *InvoiceHandler) Handle(ctx context.Context, event order.Event) (*order.Outcome, error) {
	res, err := h.Service.SubmitInvoice(ctx, event)
	if err != nil {
		return nil, err
	}
	return outcome(h.Name(), res), nil
}

// RegisterHandlers подключает обработчики синхронизации к диспетчеру
func RegisterHandlers(d *order.Dispatcher, svc Servicer) {
	d.Register(order.StatusCompleted, &InventoryHandler{Service: svc, Sign: -1})
	d.Register(order.StatusRefunded, &InventoryHandler{Service: svc, Sign: 1})
	d.Register(order.StatusProcessing, &InvoiceHandler{Service: svc})
}

func outcome(name string, res *Result) *order.Outcome {
	return &order.Outcome{
		Handler: name,
		Message: res.Message,
		Count:   res.Count,
		Failed:  res.Failed,
	}
}

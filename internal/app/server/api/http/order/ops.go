package order

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) orderEventOp() huma.Operation {
	return huma.Operation{
		OperationID: "order-event",
		Method:      http.MethodPost,
		Path:        "/api/v1/orders/events",
		Summary:     "Событие жизненного цикла заказа",
		Description: "completed списывает остатки, refunded возвращает, processing выставляет счет",
		Tags:        []string{"orders"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

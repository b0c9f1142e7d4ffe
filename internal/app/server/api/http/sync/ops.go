package sync

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) syncInventoryOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-inventory",
		Method:      http.MethodPost,
		Path:        "/api/v1/sync/inventory",
		Summary:     "Отправить локальные остатки в Siigo",
		Description: "Для каждого товара с кодом, существующего в Siigo, выставляет локальный остаток",
		Tags:        []string{"sync"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) pullProductsOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-products-pull",
		Method:      http.MethodPost,
		Path:        "/api/v1/sync/products/pull",
		Summary:     "Загрузить товары из Siigo",
		Description: "Создает локально товары, коды которых есть только в Siigo",
		Tags:        []string{"sync"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) pushProductsOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-products-push",
		Method:      http.MethodPost,
		Path:        "/api/v1/sync/products/push",
		Summary:     "Выгрузить товары в Siigo",
		Description: "Создает в Siigo товары, коды которых есть только локально",
		Tags:        []string{"sync"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) resyncInvoicesOp() huma.Operation {
	return huma.Operation{
		OperationID: "invoices-resync",
		Method:      http.MethodPost,
		Path:        "/api/v1/invoices/resync",
		Summary:     "Повторно выставить счета",
		Description: "Выставляет счета по заказам, для которых id счета еще не сохранен",
		Tags:        []string{"invoices"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

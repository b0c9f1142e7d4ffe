package sync

import (
	orderAPI "siigosync/internal/app/server/api/http/order"
	"siigosync/internal/domain/sync"
)

// Response ответ ручного триггера: статус и итог прохода
type Response struct {
	Status string `json:"status" enum:"Ok,Error"`
	Error  string `json:"error,omitempty"`
	sync.Result
}

type triggerInput struct{}

type triggerOutput struct {
	Body Response
}

// ResyncRequest заказы для повторного выставления счетов
type ResyncRequest struct {
	Orders []orderAPI.EventRequest `json:"orders" minItems:"1"`
}

type resyncInput struct {
	Body ResyncRequest
}

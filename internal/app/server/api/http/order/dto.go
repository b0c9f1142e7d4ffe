package order

import (
	"github.com/shopspring/decimal"

	"siigosync/internal/domain/order"
)

// EventRequest событие заказа в том виде, в каком его присылает магазин
type EventRequest struct {
	ID           string            `json:"id" doc:"Order identifier in the store" minLength:"1"`
	Status       string            `json:"status" enum:"processing,completed,refunded"`
	BillingName  string            `json:"billing_name,omitempty"`
	BillingEmail string            `json:"billing_email,omitempty"`
	Items        []LineItemRequest `json:"items"`
}

type LineItemRequest struct {
	Code      string  `json:"code" doc:"Product business code (SKU)"`
	Quantity  int     `json:"quantity" minimum:"0"`
	UnitPrice float64 `json:"unit_price" minimum:"0"`
}

// ToEvent доменное событие; цена переводится в decimal
func (r EventRequest) ToEvent() order.Event {
	e := order.Event{
		ID:           r.ID,
		Status:       order.Status(r.Status),
		BillingName:  r.BillingName,
		BillingEmail: r.BillingEmail,
		Items:        make([]order.LineItem, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		e.Items = append(e.Items, order.LineItem{
			Code:      it.Code,
			Quantity:  it.Quantity,
			UnitPrice: decimal.NewFromFloat(it.UnitPrice),
		})
	}
	return e
}

// FromEvent обратное преобразование для клиентов API
func FromEvent(e order.Event) EventRequest {
	r := EventRequest{
		ID:           e.ID,
		Status:       string(e.Status),
		BillingName:  e.BillingName,
		BillingEmail: e.BillingEmail,
		Items:        make([]LineItemRequest, 0, len(e.Items)),
	}
	for _, it := range e.Items {
		r.Items = append(r.Items, LineItemRequest{
			Code:      it.Code,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.InexactFloat64(),
		})
	}
	return r
}

// Response итог обработки события всеми обработчиками статуса
type Response struct {
	Status   string          `json:"status" enum:"Ok,Error"`
	Error    string          `json:"error,omitempty"`
	Outcomes []order.Outcome `json:"outcomes,omitempty"`
}

type eventInput struct {
	Body EventRequest
}

type eventOutput struct {
	Body Response
}

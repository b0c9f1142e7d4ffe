package order

import (
	"github.com/shopspring/decimal"
)

// Status статус заказа WooCommerce, на который реагирует синхронизация
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusRefunded   Status = "refunded"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusProcessing, StatusCompleted, StatusRefunded:
		return true
	}
	return false
}

// Event событие жизненного цикла заказа, которое присылает магазин
type Event struct {
	ID           string     `json:"id" doc:"Order identifier in the store"`
	Status       Status     `json:"status" enum:"processing,completed,refunded"`
	BillingName  string     `json:"billing_name"`
	BillingEmail string     `json:"billing_email"`
	Items        []LineItem `json:"items"`
}

// LineItem позиция заказа
type LineItem struct {
	Code      string          `json:"code" doc:"Product business code (SKU)"`
	Quantity  int             `json:"quantity" minimum:"0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (e Event) Validate() error {
	if e.ID == "" {
		return ErrInvalidEvent
	}
	if !e.Status.IsValid() {
		return ErrInvalidEvent
	}
	for _, it := range e.Items {
		if it.Quantity < 0 {
			return ErrInvalidEvent
		}
	}
	return nil
}

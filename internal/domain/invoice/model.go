package invoice

import (
	"github.com/shopspring/decimal"

	"siigosync/internal/domain/order"
)

// Invoice счет для Siigo, собирается из заказа в момент синхронизации
type Invoice struct {
	OrderID  string   `json:"order_id"`
	Customer Customer `json:"customer"`
	Items    []Item   `json:"items"`
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Item struct {
	Code     string          `json:"code"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// FromOrder собирает счет по заказу. Позиции без кода отбрасываются.
func FromOrder(e order.Event) Invoice {
	inv := Invoice{
		OrderID: e.ID,
		Customer: Customer{
			Name:  e.BillingName,
			Email: e.BillingEmail,
		},
		Items: make([]Item, 0, len(e.Items)),
	}

	for _, it := range e.Items {
		if it.Code == "" {
			continue
		}
		inv.Items = append(inv.Items, Item{
			Code:     it.Code,
			Quantity: it.Quantity,
			Price:    it.UnitPrice,
		})
	}

	return inv
}

// Total сумма по позициям
func (i Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range i.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusPublish статус, с которым создаются товары из Siigo
const StatusPublish = "publish"

// Product товар каталога. Code - бизнес-ключ (SKU), общий для магазина и Siigo.
// RemoteID известен только после создания или поиска в Siigo.
type Product struct {
	ID        int             `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	RemoteID  string          `json:"remote_id,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// HasCode товары без SKU в синхронизации не участвуют
func (p *Product) HasCode() bool {
	return p != nil && p.Code != ""
}

// ApplyDelta меняет остаток на delta, не опуская его ниже нуля
func (p *Product) ApplyDelta(delta int) int {
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
	return p.Stock
}

// IndexByCode строит индекс code -> товар. При повторе кода побеждает первый.
func IndexByCode(products []Product) map[string]*Product {
	idx := make(map[string]*Product, len(products))
	for i := range products {
		if !products[i].HasCode() {
			continue
		}
		if _, ok := idx[products[i].Code]; ok {
			continue
		}
		idx[products[i].Code] = &products[i]
	}
	return idx
}

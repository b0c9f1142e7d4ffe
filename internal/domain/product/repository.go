package product

import "context"

// Repository локальный каталог магазина
type Repository interface {
	// List возвращает товары; limit <= 0 - без ограничения
	List(ctx context.Context, limit int) ([]Product, error)
	GetByCode(ctx context.Context, code string) (*Product, error)
	// Save создает или обновляет товар по Code
	Save(ctx context.Context, p *Product) error
}

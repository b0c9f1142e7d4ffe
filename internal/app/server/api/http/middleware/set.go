package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

type Func = func(ctx huma.Context, next func(huma.Context))

// Set общий префикс цепочки middleware для групп операций
type Set struct {
	base huma.Middlewares
}

func NewSet(base ...Func) *Set {
	return &Set{base: append(huma.Middlewares{}, base...)}
}

// With возвращает новую цепочку: base, затем extra.
// Цепочки разных групп не делят backing array.
func (s *Set) With(extra ...Func) huma.Middlewares {
	chain := make(huma.Middlewares, 0, len(s.base)+len(extra))
	chain = append(chain, s.base...)
	return append(chain, extra...)
}

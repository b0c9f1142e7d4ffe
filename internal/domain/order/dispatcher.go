package order

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"
)

// Outcome результат обработки события одним обработчиком
type Outcome struct {
	Handler string `json:"handler"`
	Message string `json:"message"`
	Count   int    `json:"count"`
	Failed  int    `json:"failed"`
}

// Handler обработчик событий заказа
type Handler interface {
	Name() string
	Handle(ctx context.Context, event Event) (*Outcome, error)
}

// Dispatcher маршрутизирует события заказа по статусу.
// Принадлежит хосту (HTTP сервис, CLI), ядро синхронизации о нем не знает.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Status][]Handler
	log      *slog.Logger
}

func NewDispatcher(log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Status][]Handler),
		log:      log.With("component", "order_dispatcher"),
	}
}

// Register добавляет обработчик для статуса. Обработчики одного статуса
// вызываются в порядке регистрации.
func (d *Dispatcher) Register(status Status, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[status] = append(d.handlers[status], h)
}

// Dispatch передает событие всем обработчикам его статуса.
// Первая ошибка прерывает цепочку.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) ([]Outcome, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	handlers := append([]Handler(nil), d.handlers[event.Status]...)
	d.mu.RUnlock()

	if len(handlers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, event.Status)
	}

	outcomes := make([]Outcome, 0, len(handlers))
	for _, h := range handlers {
		out, err := h.Handle(ctx, event)
		if err != nil {
			d.log.Error("order handler failed",
				"handler", h.Name(),
				"order_id", event.ID,
				"status", event.Status,
				"error", err,
			)
			return outcomes, fmt.Errorf("%s: %w", h.Name(), err)
		}
		if out != nil {
			outcomes = append(outcomes, *out)
		}
	}

	d.log.Debug("order event dispatched",
		"order_id", event.ID,
		"status", event.Status,
		"handlers", len(handlers),
	)

	return outcomes, nil
}

package order

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"siigosync/internal/domain/order"
)

// Dispatcher маршрутизатор событий заказа
type Dispatcher interface {
	Dispatch(ctx context.Context, event order.Event) ([]order.Outcome, error)
}

type Handler struct {
	dispatcher Dispatcher
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(dispatcher Dispatcher, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.orderEventOp(), h.orderEvent)
}

func (h *Handler) orderEvent(ctx context.Context, input *eventInput) (*eventOutput, error) {
	event := input.Body.ToEvent()

	outcomes, err := h.dispatcher.Dispatch(ctx, event)
	if err != nil {
		h.log.Error("order event failed", "order_id", event.ID, "status", event.Status, "error", err)
		return &eventOutput{
			Body: Response{
				Status:   "Error",
				Error:    err.Error(),
				Outcomes: outcomes,
			},
		}, nil
	}

	return &eventOutput{
		Body: Response{
			Status:   "Ok",
			Outcomes: outcomes,
		},
	}, nil
}

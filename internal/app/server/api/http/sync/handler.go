package sync

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"siigosync/internal/domain/order"
	"siigosync/internal/domain/sync"
)

type Handler struct {
	service    sync.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service sync.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.syncInventoryOp(), h.syncInventory)
	huma.Register(api, h.pullProductsOp(), h.pullProducts)
	huma.Register(api, h.pushProductsOp(), h.pushProducts)
	huma.Register(api, h.resyncInvoicesOp(), h.resyncInvoices)
}

func (h *Handler) syncInventory(ctx context.Context, _ *triggerInput) (*triggerOutput, error) {
	return h.respond(h.service.SyncInventory(ctx)), nil
}

func (h *Handler) pullProducts(ctx context.Context, _ *triggerInput) (*triggerOutput, error) {
	return h.respond(h.service.PullProducts(ctx)), nil
}

func (h *Handler) pushProducts(ctx context.Context, _ *triggerInput) (*triggerOutput, error) {
	return h.respond(h.service.PushProducts(ctx)), nil
}

func (h *Handler) resyncInvoices(ctx context.Context, input *resyncInput) (*triggerOutput, error) {
	events := make([]order.Event, 0, len(input.Body.Orders))
	for _, o := range input.Body.Orders {
		events = append(events, o.ToEvent())
	}
	return h.respond(h.service.ResyncInvoices(ctx, events)), nil
}

// respond любая ошибка прохода превращается в status=Error
func (h *Handler) respond(res *sync.Result, err error) *triggerOutput {
	out := &triggerOutput{Body: Response{Status: "Ok"}}
	if res != nil {
		out.Body.Result = *res
	}
	if err != nil {
		h.log.Error("sync trigger failed", "error", err)
		out.Body.Status = "Error"
		out.Body.Error = err.Error()
	}
	return out
}

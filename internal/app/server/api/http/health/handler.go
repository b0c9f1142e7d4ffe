package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const (
	serviceName  = "siigosync"
	checkTimeout = 2 * time.Second
)

// Check проверка одной зависимости (хранилище, redis)
type Check func(ctx context.Context) error

type Handler struct {
	checks     map[string]Check
	log        *slog.Logger
	middleware huma.Middlewares
	now        func() time.Time
}

func NewHandler(checks map[string]Check, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		checks:     checks,
		log:        log.With("component", "health"),
		middleware: middleware,
		now:        time.Now,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

// healthCheck отвечает 503, если хотя бы одна зависимость недоступна
func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	resp := Response{
		Status:  StatusOK,
		Service: serviceName,
		Time:    h.now().UTC(),
	}
	code := http.StatusOK

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) > 0 {
		resp.Checks = make(map[string]string, len(names))
	}
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := h.checks[name](checkCtx)
		cancel()

		if err != nil {
			h.log.Warn("health check failed", "check", name, "error", err)
			resp.Checks[name] = err.Error()
			resp.Status = StatusDegraded
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	return &Output{Status: code, Body: resp}, nil
}

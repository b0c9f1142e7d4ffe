// POST /api/v1/sync/inventory       # Остатки в Siigo (auth)
// POST /api/v1/sync/products/pull   # Товары из Siigo (auth)
// POST /api/v1/sync/products/push   # Товары в Siigo (auth)
// POST /api/v1/invoices/resync      # Повторное выставление счетов (auth)
// POST /api/v1/orders/events        # Событие заказа (auth)
// GET  /api/v1/health               # Проверка (публичный)
// GET  /metrics                     # Prometheus (публичный)

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/exp/slog"

	"siigosync/internal/app/server/api/http/health"
	"siigosync/internal/app/server/api/http/middleware"
	"siigosync/internal/app/server/api/http/middleware/auth"
	"siigosync/internal/app/server/api/http/middleware/logger"
	orderAPI "siigosync/internal/app/server/api/http/order"
	syncAPI "siigosync/internal/app/server/api/http/sync"
	"siigosync/internal/config"
	"siigosync/internal/domain/sync"
)

const healthPath = "/api/v1/health"

type Handlers struct {
	Health *health.Handler
	Sync   *syncAPI.Handler
	Order  *orderAPI.Handler
}

// Deps сервисы, которые обслуживает API
type Deps struct {
	Sync    sync.Servicer
	Orders  orderAPI.Dispatcher
	Metrics http.Handler
	Checks  map[string]health.Check
}

// New создает *chi.Mux со всеми операциями через huma.Register.
// deps.Metrics монтируется на /metrics, если не nil.
func New(cfg *config.Config, deps Deps, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(corsOptions(cfg.Server.CORSOrigins)))

	if deps.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	humaConfig := huma.DefaultConfig("Siigo Sync API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(cfg, deps, log)
	h.Health.SetupRoutes(API)
	h.Sync.SetupRoutes(API)
	h.Order.SetupRoutes(API)

	return mux
}

func handlers(cfg *config.Config, deps Deps, log *slog.Logger) *Handlers {
	authMW := auth.New(cfg.Server.APITokenHash, log)
	if !authMW.Enabled() {
		log.Warn("API_TOKEN_HASH is empty, sync endpoints are not protected")
	}

	set := middleware.NewSet(logger.New(log, healthPath).Middleware())

	return &Handlers{
		Health: health.NewHandler(deps.Checks, log, set.With()),
		Sync:   syncAPI.NewHandler(deps.Sync, log, set.With(authMW.Middleware())),
		Order:  orderAPI.NewHandler(deps.Orders, log, set.With(authMW.Middleware())),
	}
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}
}

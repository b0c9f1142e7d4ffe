package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Service and dependency status",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
		Responses: map[string]*huma.Response{
			"503": {Description: "A dependency is unavailable"},
		},
	}
}

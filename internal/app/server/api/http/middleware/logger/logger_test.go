package logger

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestLogger_Middleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	_, api := humatest.New(t)
	huma.Register(api, huma.Operation{
		OperationID:   "ping",
		Method:        http.MethodGet,
		Path:          "/ping",
		DefaultStatus: http.StatusNoContent,
		Middlewares:   huma.Middlewares{New(log).Middleware()},
	}, func(_ context.Context, _ *struct{}) (*struct{}, error) {
		return nil, nil
	})

	resp := api.Get("/ping")

	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Contains(t, buf.String(), `"msg":"http request"`)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
	assert.Contains(t, buf.String(), `"operation":"ping"`)
	assert.Contains(t, buf.String(), `"component":"http_logger"`)
}

func TestLogger_level(t *testing.T) {
	l := New(slog.Default(), "/api/v1/health")

	tests := []struct {
		name   string
		path   string
		status int
		want   slog.Level
	}{
		{name: "ok", path: "/api/v1/sync/inventory", status: 200, want: slog.LevelInfo},
		{name: "quiet ok", path: "/api/v1/health", status: 200, want: slog.LevelDebug},
		{name: "quiet failing", path: "/api/v1/health", status: 503, want: slog.LevelError},
		{name: "client error", path: "/api/v1/orders/events", status: 422, want: slog.LevelWarn},
		{name: "unauthorized", path: "/api/v1/sync/inventory", status: 401, want: slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.level(tt.path, tt.status))
		})
	}
}

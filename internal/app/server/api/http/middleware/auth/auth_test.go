package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type pingOutput struct {
	Body struct {
		Authenticated bool `json:"authenticated"`
	}
}

func setupAPI(t *testing.T, a *Auth) humatest.TestAPI {
	t.Helper()

	_, api := humatest.New(t)
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodPost,
		Path:        "/ping",
		Middlewares: huma.Middlewares{a.Middleware()},
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.Authenticated = IsAuthenticated(ctx)
		return out, nil
	})

	return api
}

func TestAuth_Middleware(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     []any
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid token",
			header:     []any{"Authorization: Bearer s3cret"},
			wantStatus: http.StatusOK,
			wantBody:   `"authenticated":true`,
		},
		{
			name:       "wrong token",
			header:     []any{"Authorization: Bearer nope"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Unauthorized",
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Unauthorized",
		},
		{
			name:       "not a bearer",
			header:     []any{"Authorization: Basic czNjcmV0"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := setupAPI(t, New(string(hash), slog.Default()))

			resp := api.Post("/ping", tt.header...)

			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	a := New("", slog.Default())
	assert.False(t, a.Enabled())

	resp := setupAPI(t, a).Post("/ping")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"authenticated":false`)
}

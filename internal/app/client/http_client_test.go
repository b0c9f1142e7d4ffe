package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"siigosync/internal/domain/order"
)

func TestHTTPClient_Trigger(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/api/v1/sync/products/pull", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"Ok","run_id":"r1","operation":"sync_products_from_remote","success":true,"count":1}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "key", slog.Default())
	res, err := c.PullProducts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer key", gotAuth)
	assert.Equal(t, "r1", res.RunID)
	assert.Equal(t, 1, res.Count)
}

func TestHTTPClient_TriggerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"Error","error":"list remote products: timeout","success":false}`))
	}))
	defer srv.Close()

	res, err := NewHTTPClient(srv.URL, "", slog.Default()).SyncInventory(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
	assert.False(t, res.Success)
}

func TestHTTPClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"Error","error":"Unauthorized"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, "bad", slog.Default()).PushProducts(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestHTTPClient_ApplyOrder(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"status":"Ok","outcomes":[{"handler":"inventory_restock","count":1}]}`))
	}))
	defer srv.Close()

	event := order.Event{
		ID:     "7",
		Status: order.StatusRefunded,
		Items:  []order.LineItem{{Code: "A1", Quantity: 1, UnitPrice: decimal.RequireFromString("12.5")}},
	}

	outcomes, err := NewHTTPClient(srv.URL, "", slog.Default()).ApplyOrder(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "inventory_restock", outcomes[0].Handler)
	items := got["items"].([]any)
	assert.Equal(t, 12.5, items[0].(map[string]any)["unit_price"])
}

func TestNewHTTPClient_AddsScheme(t *testing.T) {
	c := NewHTTPClient("localhost:8080/", "", slog.Default())
	assert.Equal(t, "http://localhost:8080", c.baseURL)
}

package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"siigosync/internal/domain/order"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, event order.Event) ([]order.Outcome, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Outcome), args.Error(1)
}

func TestEventRequest_ToEvent(t *testing.T) {
	req := EventRequest{
		ID:     "1001",
		Status: "completed",
		Items:  []LineItemRequest{{Code: "A1", Quantity: 2, UnitPrice: 2500.5}},
	}

	e := req.ToEvent()

	assert.Equal(t, order.StatusCompleted, e.Status)
	require.Len(t, e.Items, 1)
	assert.Equal(t, "2500.5", e.Items[0].UnitPrice.String())
}

func TestHandler_OrderEvent(t *testing.T) {
	tests := []struct {
		name       string
		outcomes   []order.Outcome
		err        error
		wantStatus string
		wantBody   string
	}{
		{
			name:       "dispatched",
			outcomes:   []order.Outcome{{Handler: "inventory_deduct", Count: 1}},
			wantStatus: `"status":"Ok"`,
			wantBody:   `"handler":"inventory_deduct"`,
		},
		{
			name:       "no handler",
			err:        fmt.Errorf("%w: %s", order.ErrNoHandler, "completed"),
			wantStatus: `"status":"Error"`,
			wantBody:   "no handler",
		},
		{
			name:       "handler failed",
			err:        errors.New("invoice: siigo down"),
			wantStatus: `"status":"Error"`,
			wantBody:   "siigo down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := new(MockDispatcher)
			_, api := humatest.New(t)
			NewHandler(d, slog.Default(), nil).SetupRoutes(api)

			d.On("Dispatch", mock.Anything, mock.MatchedBy(func(e order.Event) bool {
				return e.ID == "1001" && e.Status == order.StatusCompleted
			})).Return(tt.outcomes, tt.err)

			resp := api.Post("/api/v1/orders/events", map[string]any{
				"id":     "1001",
				"status": "completed",
				"items":  []map[string]any{{"code": "A1", "quantity": 1, "unit_price": 2}},
			})

			require.Equal(t, http.StatusOK, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantStatus)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
			d.AssertExpectations(t)
		})
	}
}

func TestHandler_OrderEvent_InvalidStatus(t *testing.T) {
	d := new(MockDispatcher)
	_, api := humatest.New(t)
	NewHandler(d, slog.Default(), nil).SetupRoutes(api)

	resp := api.Post("/api/v1/orders/events", map[string]any{
		"id":     "1",
		"status": "on-hold",
		"items":  []map[string]any{},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	d.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siigosync/internal/domain/order"
)

func TestFromOrder(t *testing.T) {
	e := order.Event{
		ID:           "77",
		Status:       order.StatusProcessing,
		BillingName:  "Ana Gómez",
		BillingEmail: "ana@example.com",
		Items: []order.LineItem{
			{Code: "A1", Quantity: 2, UnitPrice: decimal.RequireFromString("10.50")},
			{Code: "", Quantity: 1, UnitPrice: decimal.NewFromInt(99)},
			{Code: "B2", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	}

	inv := FromOrder(e)

	assert.Equal(t, "77", inv.OrderID)
	assert.Equal(t, "Ana Gómez", inv.Customer.Name)
	assert.Equal(t, "ana@example.com", inv.Customer.Email)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "A1", inv.Items[0].Code)
	assert.Equal(t, "B2", inv.Items[1].Code)
	assert.True(t, inv.Total().Equal(decimal.RequireFromString("26")))
}

package siigo

import (
	"context"
	"fmt"
	"net/http"

	"siigosync/internal/domain/invoice"
)

const invoicesPath = "/invoices"

type remoteInvoice struct {
	OrderID  string              `json:"order_id,omitempty"`
	Customer remoteCustomer      `json:"customer"`
	Items    []remoteInvoiceItem `json:"items"`
	Total    amount              `json:"total"`
}

type remoteCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type remoteInvoiceItem struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
	Price    amount `json:"price"`
}

type createdInvoice struct {
	ID remoteID `json:"id"`
}

// CreateInvoice выставляет счет и возвращает id, присвоенный Siigo
func (c *Client) CreateInvoice(ctx context.Context, inv invoice.Invoice) (string, error) {
	body := remoteInvoice{
		OrderID: inv.OrderID,
		Customer: remoteCustomer{
			Name:  inv.Customer.Name,
			Email: inv.Customer.Email,
		},
		Items: make([]remoteInvoiceItem, 0, len(inv.Items)),
		Total: amount{inv.Total()},
	}
	for _, it := range inv.Items {
		body.Items = append(body.Items, remoteInvoiceItem{
			Code:     it.Code,
			Quantity: it.Quantity,
			Price:    amount{it.Price},
		})
	}

	var created createdInvoice
	if err := c.Call(ctx, http.MethodPost, invoicesPath, body, &created); err != nil {
		return "", fmt.Errorf("create invoice for order %s: %w", inv.OrderID, err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("create invoice for order %s: %w: missing id", inv.OrderID, ErrUnexpectedPayload)
	}

	c.log.Info("invoice created",
		"order_id", inv.OrderID,
		"invoice_id", string(created.ID),
		"total", inv.Total().String(),
	)

	return string(created.ID), nil
}

package order

import "errors"

var (
	ErrInvalidEvent = errors.New("invalid order event")
	ErrNoHandler    = errors.New("no handler registered for order status")
)

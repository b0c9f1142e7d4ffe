package invoice

import "errors"

var (
	ErrNotFound = errors.New("invoice not found for order")
	ErrEmpty    = errors.New("invoice has no billable items")
)

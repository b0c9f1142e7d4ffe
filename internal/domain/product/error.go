package product

import "errors"

var (
	ErrNotFound    = errors.New("product not found")
	ErrEmptyCode   = errors.New("product code is empty")
	ErrInvalidData = errors.New("invalid product data")
)

package domain

import "errors"

// Domain-level errors
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrEmptyName        = errors.New("product name must not be empty")
	ErrNegativePrice    = errors.New("product price must not be negative")
	ErrNegativeQuantity = errors.New("product quantity must not be negative")
)

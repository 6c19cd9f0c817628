// Package errors provides custom error types for cart-related operations.
package errors

import "errors"

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrLineNotFound = errors.New("product not found in cart")
)

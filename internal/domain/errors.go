package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuantity indicates a non-positive quantity was supplied.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrSuperseded indicates an in-flight mutation was replaced by a newer one.
	ErrSuperseded = errors.New("superseded by a newer update")
	// ErrProductUnavailable indicates the product cannot currently be ordered.
	ErrProductUnavailable = errors.New("product unavailable")
)

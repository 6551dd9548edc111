package usecase

import "errors"

var (
	// ErrInvalidInput marks a request the caller must fix.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientInput marks a URL whose page yielded nothing to assess.
	ErrInsufficientInput = errors.New("insufficient input")

	// ErrNotFound marks a lookup that matched nothing.
	ErrNotFound = errors.New("not found")
)

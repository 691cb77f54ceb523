package category

import "errors"

var (
	ErrNotFound     = errors.New("category not found")
	ErrInvalidInput = errors.New("invalid category")
)
